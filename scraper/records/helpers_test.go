package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/utils"
)

const pageChrome = `<!DOCTYPE html><html><body><header><a class=lnk>118000</a></header>`

func quietLogger() *utils.Logger {
	l := utils.NewLoggerWithLevel(utils.LevelDebug)
	l.SetOutput(io.Discard, io.Discard)
	return l
}

// capturedLogger records non-error lines in out and error lines in errOut.
func capturedLogger() (l *utils.Logger, out, errOut *bytes.Buffer) {
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	l = utils.NewLoggerWithLevel(utils.LevelDebug)
	l.SetOutput(out, errOut)
	return l, out, errOut
}

func countLines(buf *bytes.Buffer, substr string) int {
	n := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func cardHTML(name string, data map[string]any) string {
	blob, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf(`<section class="card part">`+
		`<h2 class=name><a href="/p/1" class=lnk>%s</a></h2>`+
		`<div class="h4 address mtreset">somewhere</div>`+
		`<button type=button data-info="%s">Afficher le numéro</button></section>`,
		name, html.EscapeString(string(blob)))
}

func pageHTML(cards ...string) string {
	return pageChrome + strings.Join(cards, "") + `<footer></footer></body></html>`
}

func uniformCards(n int) []string {
	cards := make([]string, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, cardHTML("DUPONT JEAN", map[string]any{
			"address": fmt.Sprintf("%d Rue de la Paix", i+1),
			"cp":      "75002",
			"city":    "Paris",
			"tel":     "01 23 45 67 89",
		}))
	}
	return cards
}
