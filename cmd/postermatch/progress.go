package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/dweagle/extras/internal/media"
	"github.com/dweagle/extras/internal/reconcile"
)

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// progressPrinter writes one line per resolved item.
func progressPrinter(w io.Writer) func(reconcile.Progress) {
	return func(p reconcile.Progress) {
		status := "no match"
		if p.Result != nil {
			status = fmt.Sprintf("%s tmdb:%d", p.Result.Source, p.Result.PrimaryID)
		}
		fmt.Fprintf(w, "[%s %d/%d] %s -> %s\n", typeLabel(p.Type), p.Index, p.Total, p.Title, status)
	}
}

func typeLabel(t media.Type) string {
	switch t {
	case media.TypeMovie:
		return "Movies"
	case media.TypeSeries:
		return "Series"
	case media.TypeCollection:
		return "Collections"
	default:
		return string(t)
	}
}
