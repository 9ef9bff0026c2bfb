// Package sanitize cleans directory-sourced strings before they are placed
// into UI view models.  Account names and descriptions arrive from the mail
// server's directory, which the console does not control; treat them as
// untrusted user generated content.
package sanitize

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	// styleTagFilter has already reduced style attrs to the property
	// allow-list by the time bluemonday runs.
	styleSafe = regexp.MustCompile(".*")

	// richPolicy allows the limited formatting permitted in descriptions.
	richPolicy = bluemonday.UGCPolicy().
			AllowAttrs("style").Matching(styleSafe).OnElements("span", "div", "p")

	// strictPolicy strips all markup, used for names and labels.
	strictPolicy = bluemonday.StrictPolicy()
)

// HTML sanitizes the provided html, while attempting to preserve safe inline
// CSS styling.
func HTML(input string) (output string, err error) {
	output, err = filterStyleAttrs(input)
	if err != nil {
		return "", err
	}
	return richPolicy.Sanitize(output), nil
}

// Text strips all markup from the provided string.
func Text(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// filterStyleAttrs rewrites style attributes through the CSS property
// allow-list before bluemonday sees them.
func filterStyleAttrs(input string) (string, error) {
	r := strings.NewReader(input)
	b := &bytes.Buffer{}
	if err := styleTagFilter(b, r); err != nil {
		return "", err
	}
	return b.String(), nil
}

func styleTagFilter(w io.Writer, r io.Reader) error {
	bw := bufio.NewWriter(w)
	b := make([]byte, 0, 256)
	z := html.NewTokenizer(r)
	for {
		b = b[:0]
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			err := z.Err()
			if err == io.EOF {
				return bw.Flush()
			}
			return err
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if !hasAttr {
				if _, err := bw.Write(z.Raw()); err != nil {
					return err
				}
				continue
			}
			b = append(b, '<')
			b = append(b, name...)
			for {
				key, val, more := z.TagAttr()
				strval := string(val)
				style := false
				if strings.ToLower(string(key)) == "style" {
					style = true
					strval = sanitizeStyle(strval)
				}
				if !style || strval != "" {
					b = append(b, ' ')
					b = append(b, key...)
					b = append(b, '=', '"')
					b = append(b, []byte(html.EscapeString(strval))...)
					b = append(b, '"')
				}
				if !more {
					break
				}
			}
			if tt == html.SelfClosingTagToken {
				b = append(b, '/')
			}
			if _, err := bw.Write(append(b, '>')); err != nil {
				return err
			}
		default:
			if _, err := bw.Write(z.Raw()); err != nil {
				return err
			}
		}
	}
}
