package shared

import "testing"

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("GenerateID() returned an empty identifier")
	}
	if a == b {
		t.Errorf("GenerateID() returned duplicate identifiers: %s", a)
	}
}

func TestOpenURLUnsupportedPlatform(t *testing.T) {
	orig := getRuntime
	getRuntime = func() string { return "plan9" }
	defer func() { getRuntime = orig }()

	if err := OpenURL("photos://asset?assetLocalIdentifier=A"); err == nil {
		t.Error("OpenURL() expected error on unsupported platform")
	}
}
