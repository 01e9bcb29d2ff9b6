package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/sheshine/backoffice/config"
	"github.com/sheshine/backoffice/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the configured disks. The local disk is always available;
// the s3 disk only when S3_BUCKET is set.
func Connect(ctx context.Context) error {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk(ctx)
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		return fmt.Errorf("storage: default disk %q is not configured", defaultDisk)
	}
	return nil
}

// Use returns the named disk.
func Use(name string) (Disk, error) {
	managerMu.RLock()
	defer managerMu.RUnlock()

	d, ok := disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the disk named by STORAGE_DISK.
func Default() (Disk, error) {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	return Use(name)
}

// RegisterDisk plugs in a Disk under name, e.g. a test double.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// Local returns the local disk when it is the default, for static serving.
func Local() (*LocalDisk, bool) {
	d, err := Default()
	if err != nil {
		return nil, false
	}
	ld, ok := d.(*LocalDisk)
	return ld, ok
}
