package services

import (
	"regexp"
	"testing"
)

type fakeCodeChecker struct {
	existing map[string]bool
	lookups  int
}

func (f *fakeCodeChecker) CodeExists(code string) (bool, error) {
	f.lookups++
	return f.existing[code], nil
}

var accessCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestGenerateFormat(t *testing.T) {
	gen := NewAccessCodeGenerator(&fakeCodeChecker{})
	for i := 0; i < 100; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !accessCodePattern.MatchString(code) {
			t.Fatalf("code %q does not match ^[A-Z0-9]{6}$", code)
		}
	}
}

func TestGenerateNeverRepeatsWithinProcess(t *testing.T) {
	gen := NewAccessCodeGenerator(&fakeCodeChecker{})
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if seen[code] {
			t.Fatalf("code %q issued twice", code)
		}
		seen[code] = true
	}
}

func TestGenerateChecksStore(t *testing.T) {
	checker := &fakeCodeChecker{existing: map[string]bool{}}
	gen := NewAccessCodeGenerator(checker)

	code, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if checker.lookups == 0 {
		t.Fatal("expected an existence lookup per generated code")
	}
	if checker.existing[code] {
		t.Fatalf("generated code %q collides with a stored one", code)
	}
}
