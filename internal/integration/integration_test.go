package integration

import (
	"os/exec"
	"strings"
	"testing"
)

func TestRenderSubstitutesShell(t *testing.T) {
	out, err := render("/usr/bin/zsh")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, `SHELL="/usr/bin/zsh"`) {
		t.Errorf("zsh path not substituted:\n%s", out)
	}

	if strings.Contains(out, "{{") {
		t.Error("template markers left in output")
	}

	if !strings.Contains(out, "--output paths") {
		t.Error("script should list model paths")
	}
}

func TestRender(t *testing.T) {
	if _, err := exec.LookPath("zsh"); err != nil {
		t.Skip("zsh not installed")
	}

	out, err := Render()
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(out, "# modelscan zsh integration") {
		t.Errorf("unexpected script header: %q", out[:min(len(out), 40)])
	}
}
