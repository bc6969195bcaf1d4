package core

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	if c, ok := ParseColor("bright-green"); !ok || c != ColorBrightGreen {
		t.Errorf("ParseColor(bright-green) = %v, %v", c, ok)
	}
	if c, ok := ParseColor(""); !ok || c != ColorDefault {
		t.Errorf("ParseColor(\"\") = %v, %v, expected default", c, ok)
	}
	if _, ok := ParseColor("chartreuse"); ok {
		t.Error("ParseColor(chartreuse) should fail")
	}
	if got := ColorOrange.String(); got != "orange" {
		t.Errorf("ColorOrange.String() = %q", got)
	}
	if got := Color(200).String(); got != "color(200)" {
		t.Errorf("Color(200).String() = %q", got)
	}
}

func TestColorYAML(t *testing.T) {
	var doc struct {
		Tint Color `yaml:"tint,omitempty"`
	}
	if err := yaml.Unmarshal([]byte("tint: gray\n"), &doc); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if doc.Tint != ColorGray {
		t.Errorf("tint = %v, expected gray", doc.Tint)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(out) != "tint: gray\n" {
		t.Errorf("Marshal() = %q", out)
	}

	err = yaml.Unmarshal([]byte("tint: chartreuse\n"), &doc)
	if err == nil || !strings.Contains(err.Error(), "unknown color") {
		t.Errorf("Unmarshal() = %v, expected unknown color error", err)
	}
}
