package ui

import "github.com/atotto/clipboard"

// copyText puts s on the system clipboard.
var copyText = clipboard.WriteAll
