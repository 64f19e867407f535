// Package avatar builds DiceBear avatar URLs for guestbook entries.
package avatar

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const baseURL = "https://api.dicebear.com/9.x"

// componentUnescaper undoes the QueryEscape output that differs from
// JavaScript's encodeURIComponent, so seeds map to the same URLs as the web client.
var componentUnescaper = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// Style is a DiceBear avatar style
type Style string

// DefaultStyle is used when no style is requested
const DefaultStyle Style = "adventurer"

// Styles lists the styles DiceBear 9.x serves
var Styles = func() map[Style]bool {
	names := []Style{
		"adventurer", "adventurer-neutral", "avataaars", "avataaars-neutral",
		"big-ears", "big-ears-neutral", "big-smile", "bottts", "bottts-neutral",
		"croodles", "croodles-neutral", "fun-emoji", "icons", "identicon",
		"initials", "lorelei", "lorelei-neutral", "micah", "miniavs",
		"notionists", "notionists-neutral", "open-peeps", "personas",
		"pixel-art", "pixel-art-neutral", "rings", "shapes", "thumbs",
	}
	m := make(map[Style]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}()

// URL returns the avatar image URL for seed. Unknown styles fall back to DefaultStyle.
func URL(seed string, style Style) string {
	if !Styles[style] {
		style = DefaultStyle
	}
	return fmt.Sprintf("%s/%s/svg?seed=%s", baseURL, style, escapeComponent(seed))
}

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// ForPost picks the seed for a post: its avatar seed, or its author name when empty.
func ForPost(seed, name string) string {
	if seed == "" {
		seed = name
	}
	return URL(seed, DefaultStyle)
}

// RandomSeed returns a fresh random seed.
func RandomSeed() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:26]
}
