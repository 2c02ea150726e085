package tui

import "github.com/atotto/clipboard"

// copyText is swapped out in tests.
var copyText = clipboard.WriteAll
