package output

import (
	"io"
	"os"
	"time"

	"github.com/masmgr/gitrelease-go/internal/release"
)

const reportDateTimeLayout = "2006-01-02T15:04:05"

func openOutputWriter(options OutputOptions) (io.Writer, *os.File, error) {
	if options.OutputPath == "" {
		if options.Out != nil {
			return options.Out, nil, nil
		}
		return os.Stdout, nil, nil
	}
	file, err := os.Create(options.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

func countSteps(steps []release.StepResult, status release.StepStatus) int {
	n := 0
	for _, s := range steps {
		if s.Status == status {
			n++
		}
	}
	return n
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
