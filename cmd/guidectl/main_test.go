package main

import (
	"testing"

	"github.com/anatolykoptev/go_guide/internal/engine/resources"
)

func TestRequest(t *testing.T) {
	kindFlag, domain = "Repo", "Civil"
	t.Cleanup(func() { kindFlag, domain = "video", "" })

	req, err := request([]string{"Bridge", "Load", "Monitor"})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if req.Subject != "Bridge Load Monitor" || req.Kind != resources.KindRepository || req.Domain != "Civil" {
		t.Errorf("request = %+v", req)
	}

	kindFlag = "podcast"
	if _, err := request([]string{"x"}); err == nil {
		t.Error("expected an error for an unknown kind")
	}
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"resources", "strategies", "fallback", "guide"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered: %v", name, err)
		}
	}
}
