package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// FormatReport renders the console report. Every field is optional: absent
// keys print as "N/A" and the themes and priorities sections are omitted
// entirely when their keys are missing.
func FormatReport(result AnalysisResult) string {
	banner := strings.Repeat("=", 80)

	var b strings.Builder
	b.WriteString("\n" + banner + "\n")
	b.WriteString("📊 REPORT ANALISI RECENSIONI\n")
	b.WriteString(banner + "\n")

	fmt.Fprintf(&b, "\n🎯 Sentiment Score: %s/100\n", result.Field("sentiment_score"))
	fmt.Fprintf(&b, "📈 Sentiment: %s\n", result.Field("sentiment_label"))
	fmt.Fprintf(&b, "📝 Recensioni analizzate: %s\n", result.Field("numero_recensioni_analizzate"))

	b.WriteString("\n⚠️  PUNTI CRITICI:\n")
	for i, item := range result.List("punti_critici") {
		if m, ok := item.(map[string]any); ok {
			fmt.Fprintf(&b, "   %d. %s\n", i+1, mapField(m, "problema", formatValue(item)))
			fmt.Fprintf(&b, "      Frequenza: %s | Impatto: %s\n",
				mapField(m, "frequenza", missingField), mapField(m, "impatto", missingField))
		} else {
			fmt.Fprintf(&b, "   %d. %s\n", i+1, formatValue(item))
		}
	}

	b.WriteString("\n✅ VANTAGGI COMPETITIVI:\n")
	for i, item := range result.List("vantaggi_competitivi") {
		if m, ok := item.(map[string]any); ok {
			fmt.Fprintf(&b, "   %d. %s\n", i+1, mapField(m, "vantaggio", formatValue(item)))
		} else {
			fmt.Fprintf(&b, "   %d. %s\n", i+1, formatValue(item))
		}
	}

	if result.Has("temi_ricorrenti") {
		b.WriteString("\n🔍 TEMI RICORRENTI:\n")
		for _, tema := range result.List("temi_ricorrenti") {
			fmt.Fprintf(&b, "   • %s\n", formatValue(tema))
		}
	}

	fmt.Fprintf(&b, "\n🔧 CONSIGLIO INGEGNERISTICO:\n   %s\n", result.Field("consiglio_ingegneristico"))
	fmt.Fprintf(&b, "\n📢 STRATEGIA MARKETING:\n   %s\n", result.Field("strategia_marketing"))

	if result.Has("priorita_intervento") {
		b.WriteString("\n🎯 PRIORITÀ DI INTERVENTO:\n")
		for i, p := range result.List("priorita_intervento") {
			fmt.Fprintf(&b, "   %d. %s\n", i+1, formatValue(p))
		}
	}

	b.WriteString("\n" + banner + "\n\n")
	return b.String()
}

// SaveResults writes the result as pretty-printed UTF-8 JSON. The caller
// treats a failure here as non-fatal: the console report already happened.
func SaveResults(result AnalysisResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := writeIndentedJSON(f, result); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	slog.Info("results saved", "path", path)
	return nil
}

// writeIndentedJSON emits 4-space-indented JSON with HTML escaping off so
// non-ASCII text stays readable in the output file.
func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}
