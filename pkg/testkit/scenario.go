// Package testkit drives HTTP API tests from JSON scenario files and
// provides a migrated in-memory database for package tests.
//
// Each scenario describes one request and what must come back:
//
//	testdata/
//	  product_create_requires_token.json   ← scenario
//	  product_create_req.json              ← request body
//	  product_create_res.json              ← expected response (subset)
//
// Example _test.go:
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunDir(t, handler, "testdata", testkit.Vars{"adminToken": token})
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`   // GET, POST, PUT, PATCH, DELETE
	RequestURL      string            `json:"requestUrl"`      // e.g. /api/products
	RequestFileName string            `json:"requestFileName"` // request body, relative to the scenario
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline alternative to requestFileName
	Headers         map[string]string `json:"headers"`

	ResponseFileName string          `json:"responseFileName"` // expected response, relative to the scenario
	ResponseBody     json.RawMessage `json:"responseBody"`     // inline alternative to responseFileName
	ExpectedCode     int             `json:"expectedCode"`

	dir string
}

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestFileName != "" && len(s.RequestBody) > 0 {
		return fmt.Errorf("requestFileName and requestBody are exclusive")
	}
	if s.ResponseFileName != "" && len(s.ResponseBody) > 0 {
		return fmt.Errorf("responseFileName and responseBody are exclusive")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

// RequestBodyBytes returns the request body, or nil when the scenario has
// none.
func (s *Scenario) RequestBodyBytes() ([]byte, error) {
	if len(s.RequestBody) > 0 {
		return s.RequestBody, nil
	}
	return s.readRelative(s.RequestFileName)
}

// ResponseBodyBytes returns the expected response, or nil when the
// scenario does not assert on the body.
func (s *Scenario) ResponseBodyBytes() ([]byte, error) {
	if len(s.ResponseBody) > 0 {
		return s.ResponseBody, nil
	}
	return s.readRelative(s.ResponseFileName)
}

func (s *Scenario) readRelative(name string) ([]byte, error) {
	if name == "" {
		return nil, nil
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(s.dir, name)
	}
	return os.ReadFile(name)
}

// LoadAllFromDir loads every *.json file in dir that is a scenario. Body
// fixtures referenced by scenarios are recognised by their _req/_res
// suffix and skipped.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		if isFixture(path) {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}

func isFixture(path string) bool {
	base := filepath.Base(path)
	base = base[:len(base)-len(filepath.Ext(base))]
	n := len(base)
	return n > 4 && (base[n-4:] == "_req" || base[n-4:] == "_res")
}
