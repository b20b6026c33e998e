package app

import "testing"

func TestBatchArtifactName(t *testing.T) {
	tests := []struct {
		index    int
		id, want string
	}{
		{0, "read1", "001_read1_alignment_result.txt"},
		{11, "plate/A1", "012_plate_A1_alignment_result.txt"},
		{2, `C:\run`, "003_C__run_alignment_result.txt"},
	}
	for _, tt := range tests {
		if got := batchArtifactName(tt.index, tt.id, "alignment_result.txt"); got != tt.want {
			t.Errorf("batchArtifactName(%d, %q) = %q, want %q", tt.index, tt.id, got, tt.want)
		}
	}
}
