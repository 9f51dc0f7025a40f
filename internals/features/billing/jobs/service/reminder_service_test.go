package service

import (
	"testing"

	studentModel "academix_backend/internals/features/academics/students/model"
)

func strptr(s string) *string { return &s }

func TestBuildRecipients(t *testing.T) {
	tests := []struct {
		name    string
		student studentModel.StudentModel
		want    []recipient
	}{
		{
			name: "guardian and distinct student",
			student: studentModel.StudentModel{
				StudentFirstName:     "Sofia",
				StudentLastName:      "Ramirez",
				StudentEmail:         strptr("sofia@example.com"),
				StudentGuardianName:  strptr("Carlos Ramirez"),
				StudentGuardianEmail: strptr("carlos@example.com"),
			},
			want: []recipient{
				{name: "Carlos Ramirez", email: "carlos@example.com"},
				{name: "Sofia Ramirez", email: "sofia@example.com"},
			},
		},
		{
			name: "same address sends once",
			student: studentModel.StudentModel{
				StudentFirstName:     "Sofia",
				StudentLastName:      "Ramirez",
				StudentEmail:         strptr("family@example.com"),
				StudentGuardianName:  strptr("Carlos Ramirez"),
				StudentGuardianEmail: strptr("family@example.com"),
			},
			want: []recipient{
				{name: "Carlos Ramirez", email: "family@example.com"},
			},
		},
		{
			name: "guardian only",
			student: studentModel.StudentModel{
				StudentFirstName:     "Sofia",
				StudentLastName:      "Ramirez",
				StudentGuardianEmail: strptr("carlos@example.com"),
			},
			want: []recipient{
				{name: "Sofia Ramirez", email: "carlos@example.com"},
			},
		},
		{
			name: "student only",
			student: studentModel.StudentModel{
				StudentFirstName: "Sofia",
				StudentLastName:  "Ramirez",
				StudentEmail:     strptr("sofia@example.com"),
			},
			want: []recipient{
				{name: "Sofia Ramirez", email: "sofia@example.com"},
			},
		},
		{
			name: "no addresses",
			student: studentModel.StudentModel{
				StudentFirstName: "Sofia",
				StudentLastName:  "Ramirez",
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildRecipients(tt.student)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("recipient[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
