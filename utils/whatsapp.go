package utils

import (
	"net/url"
	"strings"
)

// WhatsappLink builds a wa.me deep link. The template supports {product} and
// {sku} placeholders; the rendered message is query-escaped.
func WhatsappLink(number, template, productName, sku string) string {
	number = strings.TrimLeft(strings.ReplaceAll(number, " ", ""), "+")
	if number == "" {
		return ""
	}

	msg := template
	if msg == "" {
		msg = "Hola! Me interesa: {product} ({sku})"
	}
	msg = strings.ReplaceAll(msg, "{product}", productName)
	msg = strings.ReplaceAll(msg, "{sku}", sku)

	return "https://wa.me/" + number + "?text=" + url.QueryEscape(msg)
}
