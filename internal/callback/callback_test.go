package callback

import (
	"errors"
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	classTime := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	actions := []Action{
		{Kind: KindSelfReport, Status: "present", SubjectID: 7, StudentID: 3},
		{Kind: KindSelfReport, Status: "absent", SubjectID: 7, StudentID: 3},
		{Kind: KindEditRequest, Position: 2, SubjectID: 7, ClassTime: classTime},
		{Kind: KindSetStatus, Status: "absent", StudentID: 3, SubjectID: 7, ClassTime: classTime},
		{Kind: KindConfirmAll, SubjectID: 7, ClassTime: classTime},
	}
	for _, want := range actions {
		t.Run(string(want.Kind), func(t *testing.T) {
			got, err := Parse(want.Encode())
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", want.Encode(), err)
			}
			if got.Kind != want.Kind || got.Status != want.Status ||
				got.StudentID != want.StudentID || got.SubjectID != want.SubjectID ||
				got.Position != want.Position {
				t.Errorf("Parse(%q) = %+v, want %+v", want.Encode(), got, want)
			}
			if !want.ClassTime.IsZero() && !got.ClassTime.Equal(want.ClassTime) {
				t.Errorf("class time = %s, want %s", got.ClassTime, want.ClassTime)
			}
		})
	}
}

func TestParseRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "unknown tag", data: "frobnicate:1:2", wantErr: ErrUnknownAction},
		{name: "empty", data: "", wantErr: ErrUnknownAction},
		{name: "report missing fields", data: "report:present:7", wantErr: ErrMalformed},
		{name: "report bad status", data: "report:maybe:7:3", wantErr: ErrMalformed},
		{name: "report non-numeric id", data: "report:present:seven:3", wantErr: ErrMalformed},
		{name: "report zero id", data: "report:present:0:3", wantErr: ErrMalformed},
		{name: "edit zero position", data: "edit:0:7:1736157600", wantErr: ErrMalformed},
		{name: "edit negative position", data: "edit:-2:7:1736157600", wantErr: ErrMalformed},
		{name: "edit bad timestamp", data: "edit:1:7:later", wantErr: ErrMalformed},
		{name: "set missing timestamp", data: "set:present:3:7", wantErr: ErrMalformed},
		{name: "confirm extra field", data: "confirm:7:1736157600:9", wantErr: ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.data); !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.data, err, tt.wantErr)
			}
		})
	}
}
