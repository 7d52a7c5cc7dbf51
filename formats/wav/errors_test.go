// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrNotWavFile, "not a WAV file"},
		{ErrUnsupportedWavLayout, "unsupported WAV layout"},
		{ErrOnlyPCM16bitSupported, "only PCM 16-bit supported"},
		{ErrUnsupportedWavChunks, "unsupported WAV chunks"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}

		wrapped := fmt.Errorf("loading sounds/click.wav: %w", tt.err)
		if !errors.Is(wrapped, tt.err) {
			t.Errorf("errors.Is(wrapped, %v) = false", tt.err)
		}
	}

	if errors.Is(ErrNotWavFile, ErrOnlyPCM16bitSupported) {
		t.Error("distinct errors compare equal")
	}
}
