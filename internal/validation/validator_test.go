package validation

import (
	"strings"
	"testing"

	"github.com/temply-mn/temply-api/internal/apperr"
)

type sample struct {
	TemplateID string   `json:"template_id" validate:"required,uuid"`
	Price      *int64   `json:"price" validate:"omitempty,min=0"`
	Title      string   `json:"title" validate:"omitempty,min=3,max=10"`
	Link       string   `json:"canva_link" validate:"omitempty,http_url"`
	Tags       []string `json:"tags" validate:"omitempty,max=3,dive,max=5"`
}

func TestStruct(t *testing.T) {
	neg := int64(-1)
	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{"valid", sample{TemplateID: "6f1c0c52-4b8f-4a43-9a6e-0f3c4b6a1d10"}, ""},
		{"missing required uses json name", sample{}, "template_id шаардлагатай"},
		{"negative price", sample{TemplateID: "6f1c0c52-4b8f-4a43-9a6e-0f3c4b6a1d10", Price: &neg}, "price"},
		{"short title", sample{TemplateID: "6f1c0c52-4b8f-4a43-9a6e-0f3c4b6a1d10", Title: "ab"}, "тэмдэгт"},
		{"bad url", sample{TemplateID: "6f1c0c52-4b8f-4a43-9a6e-0f3c4b6a1d10", Link: "canva"}, "canva_link"},
		{"too many tags", sample{TemplateID: "6f1c0c52-4b8f-4a43-9a6e-0f3c4b6a1d10", Tags: []string{"a", "b", "c", "d"}}, "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("kind = %s, want validation", apperr.KindOf(err))
			}
			if msg := apperr.MessageOf(err); !strings.Contains(msg, tt.wantErr) {
				t.Errorf("message %q does not contain %q", msg, tt.wantErr)
			}
		})
	}
}
