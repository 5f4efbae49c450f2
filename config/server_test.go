package config

import (
	"reflect"
	"testing"
)

func TestParseOrigins(t *testing.T) {
	got := ParseOrigins(" https://suviet.vn/, ,https://admin.suviet.vn ")
	want := []string{"https://suviet.vn", "https://admin.suviet.vn"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ParseOrigins(""); len(got) != 0 {
		t.Fatalf("expected no origins, got %v", got)
	}
}

func TestServerConfigAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://suviet.vn,https://admin.suviet.vn")
	got := GetServerConfig().AllowedOrigins
	if len(got) != 2 || got[1] != "https://admin.suviet.vn" {
		t.Fatalf("unexpected origins %v", got)
	}
}
