// Package render decorates names for terminal display. It's the one piece
// of the engine allowed to know about ANSI color, kept separate from shell
// so the dispatch logic stays plain strings and is easy to test without a
// terminal.
package render

import (
	"github.com/dargueta/fat16vol/volume"
	"github.com/fatih/color"
)

var (
	dirColor = color.New(color.FgBlue, color.Bold)
	hidColor = color.New(color.FgHiBlack)
)

// Name renders a trimmed entry name for an `ls` listing: directories in
// bold blue, hidden entries dimmed, everything else unstyled.
func Name(name string, attr uint8) string {
	trimmed := trimName(name)
	switch {
	case attr&volume.AttrHidden != 0:
		return hidColor.Sprint(trimmed)
	case attr&volume.AttrDirectory != 0:
		return dirColor.Sprint(trimmed)
	default:
		return trimmed
	}
}

// trimName strips the trailing space padding an 8.3 name carries on disk,
// reinserting the dot between base and extension if both are present.
func trimName(name string) string {
	if len(name) != 11 {
		return name
	}
	base := trimRight(name[:8])
	ext := trimRight(name[8:])
	if ext == "" {
		return base
	}
	return base + "." + ext
}

func trimRight(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	return s[:end]
}
