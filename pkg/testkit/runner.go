package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Vars are substituted for {{name}} placeholders in a scenario's URL,
// headers and request body before it is fired.
type Vars map[string]string

func (v Vars) expand(s string) string {
	for k, val := range v {
		s = strings.ReplaceAll(s, "{{"+k+"}}", val)
	}
	return s
}

// Run executes a single scenario file against handler.
func Run(t *testing.T, handler http.Handler, scenarioPath string, vars Vars) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}

	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s, vars)
	})
}

// RunDir runs every scenario in dir as a subtest, in file name order.
func RunDir(t *testing.T, handler http.Handler, dir string, vars Vars) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Errorf("%v", err)
	}

	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s, vars)
		})
	}
}

// Do fires one scenario and returns the recorder without asserting, for
// tests that inspect the response themselves.
func Do(t *testing.T, handler http.Handler, s *Scenario, vars Vars) *httptest.ResponseRecorder {
	t.Helper()

	body, err := s.RequestBodyBytes()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader([]byte(vars.expand(string(body))))
	}

	method := strings.ToUpper(s.RequestMethod)
	if method == "" {
		method = http.MethodGet
	}

	req := httptest.NewRequest(method, vars.expand(s.RequestURL), reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, vars.expand(v))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario, vars Vars) {
	t.Helper()

	rec := Do(t, handler, s, vars)

	AssertStatusCode(t, s, rec.Code)

	expected, err := s.ResponseBodyBytes()
	if err != nil {
		t.Errorf("[%s] read expected response: %v", s.Name, err)
		return
	}
	AssertJSONBody(t, s, []byte(vars.expand(string(expected))), rec.Body.Bytes())
}
