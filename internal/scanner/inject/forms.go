package inject

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/buemura/webscan/pkg/types"
)

// skipInputTypes are field types that carry no user-controlled text.
var skipInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"file":   true,
	"image":  true,
}

// testableInputs filters a form down to fields worth injecting into: the
// field must be named and must accept text-like input.
func testableInputs(form types.Form) []types.FormInput {
	var out []types.FormInput
	for _, in := range form.Inputs {
		if in.Name == "" {
			continue
		}
		if skipInputTypes[strings.ToLower(in.Type)] {
			continue
		}
		out = append(out, in)
	}
	return out
}

// syntheticValue returns a plausible filler value for a form field so the
// submission passes basic server-side validation.
func syntheticValue(in types.FormInput) string {
	if in.Value != "" {
		return in.Value
	}
	switch strings.ToLower(in.Type) {
	case "email":
		return "test@example.com"
	case "password":
		return "Passw0rd!test"
	case "number", "tel":
		return "1234567890"
	case "url":
		return "https://example.com"
	default:
		return "test"
	}
}

// buildSubmission fills every field of the form: the target field carries the
// payload, every other field gets a synthetic value.
func buildSubmission(inputs []types.FormInput, targetField, payload string) url.Values {
	values := url.Values{}
	for _, in := range inputs {
		if in.Name == targetField {
			values.Set(in.Name, payload)
		} else {
			values.Set(in.Name, syntheticValue(in))
		}
	}
	return values
}

// resolveAction turns a form's action into an absolute URL, using the form's
// page URL first and the scan base URL as fallback.
func resolveAction(form types.Form, baseURL string) (string, error) {
	action := form.Action
	if action == "" {
		// Empty action submits back to the page itself.
		action = form.PageURL
	}
	if action == "" {
		return "", fmt.Errorf("form has no action or page URL")
	}

	ref, err := url.Parse(action)
	if err != nil {
		return "", fmt.Errorf("unparseable form action %q: %w", action, err)
	}
	if ref.IsAbs() {
		return action, nil
	}

	base := form.PageURL
	if base == "" {
		base = baseURL
	}
	baseParsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("unparseable base %q: %w", base, err)
	}
	return baseParsed.ResolveReference(ref).String(), nil
}

// submission is one request sent to a form endpoint.
type submission struct {
	Status      int
	Body        string
	RequestLine string
}

// submitForm sends the filled form via GET (query params) or POST (form
// body), following the form's declared method.
func submitForm(ctx context.Context, client *http.Client, actionURL, method string, values url.Values) (*submission, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method != http.MethodPost {
		method = http.MethodGet
	}

	var req *http.Request
	var err error
	var requestLine string

	if method == http.MethodGet {
		u, parseErr := url.Parse(actionURL)
		if parseErr != nil {
			return nil, parseErr
		}
		u.RawQuery = values.Encode()
		requestLine = fmt.Sprintf("GET %s", u.String())
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	} else {
		encoded := values.Encode()
		requestLine = fmt.Sprintf("POST %s\n%s", actionURL, encoded)
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, actionURL, strings.NewReader(encoded))
		if req != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyRead))
	if err != nil {
		return nil, err
	}

	return &submission{
		Status:      resp.StatusCode,
		Body:        string(body),
		RequestLine: requestLine,
	}, nil
}
