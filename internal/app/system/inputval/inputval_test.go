package inputval

import "testing"

func TestValidate_URLRules(t *testing.T) {
	type linkInput struct {
		Video string `validate:"omitempty,http_url" label:"Video URL"`
		CTA   string `validate:"omitempty,link" label:"donate_url"`
	}

	tests := []struct {
		name      string
		input     linkInput
		wantFirst string
	}{
		{"http video", linkInput{Video: "http://example.com"}, ""},
		{"https video", linkInput{Video: "https://www.youtube.com/watch?v=abc"}, ""},
		{"ftp video", linkInput{Video: "ftp://example.com"}, "Video URL must be a valid http or https URL."},
		{"bare host", linkInput{Video: "example.com"}, "Video URL must be a valid http or https URL."},
		{"not a url", linkInput{Video: "not a url"}, "Video URL must be a valid http or https URL."},
		{"cta https", linkInput{CTA: "https://give.example.org"}, ""},
		{"cta path", linkInput{CTA: "/about#get-involved"}, ""},
		{"cta mailto", linkInput{CTA: "mailto:contact@helpinghands.org?subject=Donation"}, ""},
		{"cta junk", linkInput{CTA: "javascript:alert(1)"}, "donate_url must be an http or https URL, a site path or a mailto: link."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.input).First(); got != tt.wantFirst {
				t.Errorf("First() = %q, want %q", got, tt.wantFirst)
			}
		})
	}
}

func TestValidate_Email(t *testing.T) {
	type contactInput struct {
		Email string `validate:"omitempty,email" label:"contact_email"`
	}
	for in, ok := range map[string]bool{
		"support@helpinghands.org":     true,
		"media@ngo.org":                true,
		"":                             true,
		"user@":                        false,
		"User Name <user@example.com>": false,
	} {
		if got := !Validate(contactInput{Email: in}).HasErrors(); got != ok {
			t.Errorf("email %q: valid = %v, want %v", in, got, ok)
		}
	}
}

func TestValidate_Dates(t *testing.T) {
	type dateInput struct {
		Date string `validate:"omitempty,datetime=2006-01-02" label:"Start date"`
	}
	for in, ok := range map[string]bool{
		"2024-01-31": true,
		"2024-02-30": false,
		"31/01/2024": false,
		"":           true,
	} {
		if got := !Validate(dateInput{Date: in}).HasErrors(); got != ok {
			t.Errorf("date %q: valid = %v, want %v", in, got, ok)
		}
	}
}

func TestValidate(t *testing.T) {
	type pressInput struct {
		Title string `validate:"required,max=10" label:"Title"`
		Date  string `validate:"required,datetime=2006-01-02" label:"Release date"`
	}

	tests := []struct {
		name      string
		input     pressInput
		wantFirst string
	}{
		{"valid", pressInput{Title: "Launch", Date: "2024-03-01"}, ""},
		{"missing title", pressInput{Date: "2024-03-01"}, "Title is required."},
		{"title too long", pressInput{Title: "A very long title", Date: "2024-03-01"}, "Title must be at most 10 characters."},
		{"bad date", pressInput{Title: "Launch", Date: "March"}, "Release date must be a date in YYYY-MM-DD format."},
		{"both missing", pressInput{}, "Title is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.input)
			if res.HasErrors() != (tt.wantFirst != "") {
				t.Fatalf("HasErrors = %v, errors %v", res.HasErrors(), res.Errors)
			}
			if res.First() != tt.wantFirst {
				t.Errorf("First() = %q, want %q", res.First(), tt.wantFirst)
			}
		})
	}
}

func TestValidate_CustomRules(t *testing.T) {
	type projectInput struct {
		Status string `validate:"required,projectstatus" label:"Status"`
		URL    string `validate:"omitempty,http_url" label:"Link"`
	}

	if res := Validate(projectInput{Status: "ongoing"}); res.HasErrors() {
		t.Errorf("expected valid, got %v", res.Errors)
	}
	if res := Validate(projectInput{Status: "Paused"}); !res.HasErrors() {
		t.Error("expected unknown status to fail")
	}
	if res := Validate(projectInput{Status: "Upcoming", URL: "mailto:x@y.z"}); !res.HasErrors() {
		t.Error("expected non-http link to fail")
	}
}

func TestResult_All(t *testing.T) {
	r := &Result{Errors: []FieldError{{Message: "Error 1"}, {Message: "Error 2"}}}
	if got := r.All(); got != "Error 1; Error 2" {
		t.Errorf("All() = %q", got)
	}
	empty := &Result{}
	if empty.All() != "" || empty.First() != "" {
		t.Error("expected empty messages for empty result")
	}
}
