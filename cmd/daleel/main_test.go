package main

import (
	"reflect"
	"testing"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"ما", "حكم", "الصيام"}, "ما حكم الصيام"},
		{[]string{"ما حكم الصيام"}, "ما حكم الصيام"},
		{[]string{"  padded  "}, "padded"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := buildSearchQuery(tt.args); got != tt.want {
			t.Errorf("buildSearchQuery(%v): got %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestSearchArgsReorder(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{
			[]string{"query", "-limit", "3"},
			[]string{"-limit", "3", "query"},
		},
		{
			[]string{"-limit", "3", "query"},
			[]string{"-limit", "3", "query"},
		},
		{
			[]string{"just", "a", "query"},
			[]string{"just", "a", "query"},
		},
		{nil, nil},
	}
	for _, tt := range tests {
		if got := searchArgsReorder(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("searchArgsReorder(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
