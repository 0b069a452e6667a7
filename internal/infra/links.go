package infra

import (
	"net/url"
	"strings"
)

// Deep links de contato devolvidos ao frontend. Só montagem de string; o
// protocolo em si é do WhatsApp / cliente de e-mail.

// LinkWhatsapp returns https://wa.me/<e164>?text=<urlencoded>. Non-digit
// characters are stripped from the number; an empty message yields a bare link.
func LinkWhatsapp(numero, mensagem string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, numero)

	link := "https://wa.me/" + digits
	if mensagem != "" {
		link += "?text=" + url.QueryEscape(mensagem)
	}
	return link
}

// LinkMailto returns a mailto: link with optional subject and body.
func LinkMailto(email, assunto, corpo string) string {
	link := "mailto:" + email
	params := url.Values{}
	if assunto != "" {
		params.Set("subject", assunto)
	}
	if corpo != "" {
		params.Set("body", corpo)
	}
	if encoded := params.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return link
}
