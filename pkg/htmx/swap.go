package htmx

import "strings"

// SwapStrategy is an hx-swap value, optionally followed by modifiers.
type SwapStrategy string

// Swap styles used by the site. Any other hx-swap value can be written as
// SwapStrategy("beforeend").
const (
	SwapInnerHTML SwapStrategy = "innerHTML"
	SwapOuterHTML SwapStrategy = "outerHTML"
	SwapNone      SwapStrategy = "none"
)

// With appends swap modifiers such as "show:none" or "settle:0ms".
func (s SwapStrategy) With(modifiers ...string) SwapStrategy {
	if len(modifiers) == 0 {
		return s
	}
	return SwapStrategy(string(s) + " " + strings.Join(modifiers, " "))
}
