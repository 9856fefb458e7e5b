// Package translate formats user-visible messages for the user's locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DEFAULT_LOCALE = "en-US"

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// Locales returns the detected user locales, falling back to en-US.
func Locales() (locales []string) {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("cjemu: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}

	return
}

// Tag returns the language tag messages are printed in.
func Tag() language.Tag {
	return message.MatchLanguage(Locales()...)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	printerOnce.Do(func() {
		printer = message.NewPrinter(Tag())
	})

	return printer.Sprintf(key, args...)
}
