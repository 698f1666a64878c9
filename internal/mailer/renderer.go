package mailer

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*
var templateFS embed.FS

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render executes templates/<name>_subject.txt, <name>.html and <name>.txt.
func (r *Renderer) Render(name string, data any) (subject, html, text string, err error) {
	if subject, err = r.renderFile(name+"_subject.txt", data, false); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	if html, err = r.renderFile(name+".html", data, true); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	if text, err = r.renderFile(name+".txt", data, false); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}

	return strings.TrimSpace(subject), html, text, nil
}

func (r *Renderer) renderFile(name string, data any, html bool) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if html {
		t, err := htmltemplate.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		err = t.Execute(&buf, data)
		if err != nil {
			return "", err
		}
	} else {
		t, err := texttemplate.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		err = t.Execute(&buf, data)
		if err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}
