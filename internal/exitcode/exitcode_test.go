package exitcode

import (
	"fmt"
	"testing"

	"github.com/felixgeelhaar/swarm/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: Success,
		},
		{
			name: "generic error",
			err:  fmt.Errorf("something went wrong"),
			want: GeneralError,
		},
		{
			name: "fatal stage error",
			err:  errors.New(errors.ErrCodeStageFailed, "integrate stage failed"),
			want: StageError,
		},
		{
			name: "missing board entry",
			err:  errors.NewBoardTaskMissingError("integration"),
			want: StageError,
		},
		{
			name: "spec not found",
			err:  errors.NewSpecNotFoundError("/tmp/spec.yaml"),
			want: SpecError,
		},
		{
			name: "usage error",
			err:  fmt.Errorf(`required flag "spec" not set`),
			want: UsageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	if GetExitCodeDescription(Success) != "Success" {
		t.Error("unexpected description for Success")
	}
	if GetExitCodeDescription(999) != "Unknown error" {
		t.Error("unexpected description for unknown code")
	}
}
