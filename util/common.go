package util

import (
	"sort"
	"unicode"

	"github.com/hoardcache/hoard/log"

	"github.com/sirupsen/logrus"
)

//nolint:gochecknoglobals
var (
	// Version of the application
	Version = "undefined"

	// BuildTime of the application
	BuildTime = "undefined"
)

// LogOnError logs the message only if error is not nil
func LogOnError(message string, err error) {
	if err != nil {
		log.Log().Error(message, err)
	}
}

// LogOnErrorWithEntry logs the message only if error is not nil
func LogOnErrorWithEntry(logEntry *logrus.Entry, message string, err error) {
	if err != nil {
		logEntry.Error(message, err)
	}
}

// FatalOnError logs the message only if error is not nil and exits the program execution
func FatalOnError(message string, err error) {
	if err != nil {
		log.Log().Fatal(message, err)
	}
}

// Obfuscate replaces each letter and digit with "*" to mask user sensitive data.
// Separators stay visible so the shape of a key remains recognizable in logs.
func Obfuscate(in string) string {
	out := []rune(in)
	for i, c := range out {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			out[i] = '*'
		}
	}

	return string(out)
}

// IterateValueSorted iterates over maps value in a sorted order and applies the passed function
func IterateValueSorted(in map[string]int, fn func(string, int)) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return in[keys[i]] > in[keys[j]] || (in[keys[i]] == in[keys[j]] && keys[i] > keys[j])
	})

	for _, k := range keys {
		fn(k, in[k])
	}
}
