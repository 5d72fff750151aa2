package donation

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
)

// DefaultCommentTemplate is the HTML snippet posted when the New label is added.
const DefaultCommentTemplate = `<p>This pull request accepts donations.</p>
<p><a href="{{ .URL }}" target="_blank" rel="noopener noreferrer"><img src="https://img.shields.io/badge/Donate-{{ .Network }}-blue" alt="Donate"></a></p>
<p>Target: {{ .Target }} XRP</p>`

// LinkParams identifies the donation a link points to.
type LinkParams struct {
	Owner   string
	Repo    string
	Number  int
	Address string
	Network string
	Target  Target
}

// DonationURL builds the donation page URL for a pull request. Existing query
// parameters of base are kept.
func DonationURL(base string, p LinkParams) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errSiteURLInvalid, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", errSiteURLInvalid, base)
	}

	q := u.Query()
	q.Set("repo", p.Owner+"/"+p.Repo)
	q.Set("pr", strconv.Itoa(p.Number))
	q.Set("address", p.Address)
	q.Set("network", p.Network)
	q.Set("target", p.Target.String())
	u.RawQuery = q.Encode()

	return u.String(), nil
}

type commentData struct {
	URL     string
	Network string
	Target  string
}

// CommentBody renders the donation comment. An empty tmpl selects
// DefaultCommentTemplate. The template sees .URL, .Network and .Target.
func CommentBody(tmpl, donationURL string, p LinkParams) (string, error) {
	if tmpl == "" {
		tmpl = DefaultCommentTemplate
	}

	t, err := template.New("comment").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse comment template: %w", err)
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, commentData{
		URL:     donationURL,
		Network: p.Network,
		Target:  p.Target.String(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render comment: %w", err)
	}

	return buf.String(), nil
}
