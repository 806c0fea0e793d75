package api

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/Flowearn/Flow-data/internal/binance"
)

// Validator handles validation logic separate from HTTP concerns
type Validator struct {
	symbolRegex *regexp.Regexp
}

var (
	validatorInstance *Validator
	validatorOnce     sync.Once
)

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		validatorInstance = &Validator{
			// venue symbols: uppercase base+quote concatenated, e.g. BTCUSDT
			symbolRegex: regexp.MustCompile(`^[A-Z0-9]{5,12}$`),
		}
	})
	return validatorInstance
}

// ValidateSymbol sanitizes and validates a trading symbol, returning the
// canonical uppercase form.
func (v *Validator) ValidateSymbol(symbol string) (string, error) {
	cleanSymbol := strings.ToUpper(v.sanitizeInput(symbol))

	if cleanSymbol == "" {
		return "", errors.New("symbol is required")
	}
	if !v.symbolRegex.MatchString(cleanSymbol) {
		return "", errors.New("symbol must be 5-12 uppercase letters or digits, e.g. BTCUSDT")
	}

	return cleanSymbol, nil
}

// ValidateInterval validates a chart interval against the venue's kline set.
func (v *Validator) ValidateInterval(interval string) (string, error) {
	cleanInterval := v.sanitizeInput(interval)

	if cleanInterval == "" {
		return "", errors.New("interval is required")
	}
	if !binance.Interval(cleanInterval).Valid() {
		return "", fmt.Errorf("invalid interval '%s'. Supported values: 1m, 3m, 5m, 15m, 30m, 1h, 2h, 4h, 6h, 8h, 12h, 1d, 3d, 1w, 1M", cleanInterval)
	}

	return cleanInterval, nil
}

// ValidateMessage sanitizes an assistant chat message.
func (v *Validator) ValidateMessage(message string) (string, error) {
	cleanMessage := v.sanitizeInput(message)
	if cleanMessage == "" {
		return "", errors.New("message is required")
	}
	return cleanMessage, nil
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func (v *Validator) sanitizeInput(input string) string {
	// Trim whitespace
	input = strings.TrimSpace(input)

	// Remove null bytes and control characters
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.Map(func(r rune) rune {
		// Keep printable ASCII and common symbols, remove control chars
		if r < 32 && r != 9 && r != 10 && r != 13 { // Keep tab, LF, CR
			return -1 // Remove character
		}
		return r
	}, input)

	// Limit length to prevent DoS
	if len(input) > 500 {
		input = input[:500]
	}

	return input
}
