package processing

import (
	"iter"

	"github.com/five82/scenechapters/internal/chapters"
	"github.com/five82/scenechapters/internal/logging"
	"github.com/five82/scenechapters/internal/reporter"
)

func writeChapters(path string, seq iter.Seq2[float64, error], rep reporter.Reporter) (int, error) {
	count, err := chapters.WriteFile(path, seq)
	if err != nil {
		return 0, err
	}

	logging.Info("wrote chapters", "path", path, "count", count)
	rep.ChaptersWritten(reporter.ChaptersOutcome{
		ChaptersFile: path,
		ChapterCount: count,
	})
	return count, nil
}
