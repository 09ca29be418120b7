package email

import (
	"strings"
	"testing"
)

func TestServiceIsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected bool
	}{
		{
			name:     "empty config",
			config:   Config{},
			expected: false,
		},
		{
			name: "missing host",
			config: Config{
				Port:      "587",
				From:      "site@example.com",
				Recipient: "owner@example.com",
			},
			expected: false,
		},
		{
			name: "missing recipient",
			config: Config{
				Host: "smtp.example.com",
				Port: "587",
				From: "site@example.com",
			},
			expected: false,
		},
		{
			name: "fully configured",
			config: Config{
				Host:      "smtp.example.com",
				Port:      "587",
				From:      "site@example.com",
				Recipient: "owner@example.com",
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.config)
			if svc.IsConfigured() != tt.expected {
				t.Errorf("IsConfigured() = %v, want %v", svc.IsConfigured(), tt.expected)
			}
		})
	}
}

func TestRenderContactTemplate(t *testing.T) {
	data := ContactData{
		SenderName:  "Ada Lovelace",
		SenderEmail: "ada@example.com",
		Message:     "I enjoyed your analytical engine notes.",
	}

	html, err := renderTemplate(contactEmailTemplate, data)
	if err != nil {
		t.Fatalf("renderTemplate failed: %v", err)
	}

	if !strings.Contains(html, "Ada Lovelace") {
		t.Error("template should contain sender name")
	}
	if !strings.Contains(html, "ada@example.com") {
		t.Error("template should contain sender email")
	}
	if !strings.Contains(html, "analytical engine") {
		t.Error("template should contain the message body")
	}
}

func TestRenderContactTemplateEscapesHTML(t *testing.T) {
	data := ContactData{
		SenderName:  "<script>alert(1)</script>",
		SenderEmail: "x@example.com",
		Message:     "hello",
	}

	html, err := renderTemplate(contactEmailTemplate, data)
	if err != nil {
		t.Fatalf("renderTemplate failed: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("sender name should be escaped")
	}
}
