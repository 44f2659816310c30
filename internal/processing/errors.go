package processing

import (
	stderrors "errors"

	"github.com/five82/scenechapters/internal/errors"
	"github.com/five82/scenechapters/internal/reporter"
)

// ReportError converts err into a reporter error with a hint for the user.
func ReportError(rep reporter.Reporter, err error) {
	if err == nil || rep == nil {
		return
	}

	re := reporter.ReporterError{Title: "Error", Message: err.Error()}

	var coreErr *errors.CoreError
	if stderrors.As(err, &coreErr) {
		re.Title = coreErr.Kind.String()
		re.Message = coreErr.Message
		if coreErr.Underlying != nil && coreErr.Kind != errors.KindCommand {
			re.Context = coreErr.Underlying.Error()
		}
		re.Suggestion = suggestion(coreErr)
	}

	rep.Error(re)
}

func suggestion(err *errors.CoreError) string {
	switch err.Kind {
	case errors.KindUsage:
		return "Run with --help to see the expected arguments"
	case errors.KindConfig:
		return "Frame rates look like 24, 23.976 or 24000/1001; thresholds range from 0.0 to 1.0"
	case errors.KindParse:
		return "Check the line named above in the input file"
	case errors.KindIO:
		return "Check that the output directory exists and is writable"
	case errors.KindCommand:
		var cmdErr *errors.CommandError
		if stderrors.As(err, &cmdErr) && cmdErr.Kind == errors.CommandStart {
			return "Install ffmpeg or point --ffmpeg at the executable"
		}
		return "The tail of the ffmpeg output is shown above"
	default:
		return ""
	}
}
