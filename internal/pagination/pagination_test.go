package pagination

import "testing"

const maxInt = int(^uint(0) >> 1)

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name      string
		req       PageRequest
		wantData  []int
		wantPage  int
		wantPages int
	}{
		{"defaults", PageRequest{}, []int{1, 2, 3, 4, 5}, 1, 1},
		{"first page", PageRequest{Page: 1, PageSize: 2}, []int{1, 2}, 1, 3},
		{"last partial page", PageRequest{Page: 3, PageSize: 2}, []int{5}, 3, 3},
		{"past the end", PageRequest{Page: 9, PageSize: 2}, []int{}, 9, 3},
		{"huge page", PageRequest{Page: 184467440737095518, PageSize: 50}, []int{}, 184467440737095518, 1},
		{"huge page size", PageRequest{Page: 2, PageSize: maxInt}, []int{}, 2, 1},
		{"negative page", PageRequest{Page: -3, PageSize: 2}, []int{1, 2}, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(items, tt.req)
			if len(got.Data) != len(tt.wantData) {
				t.Fatalf("expected %v, got %v", tt.wantData, got.Data)
			}
			for i := range tt.wantData {
				if got.Data[i] != tt.wantData[i] {
					t.Errorf("expected %v, got %v", tt.wantData, got.Data)
				}
			}
			if got.Page != tt.wantPage || got.TotalPages != tt.wantPages || got.TotalItems != 5 {
				t.Errorf("unexpected metadata: %+v", got)
			}
		})
	}
}

func TestApplyEmpty(t *testing.T) {
	got := Apply([]string(nil), PageRequest{})
	if got.Data == nil || len(got.Data) != 0 || got.TotalPages != 0 {
		t.Errorf("expected empty first page, got %+v", got)
	}
}
