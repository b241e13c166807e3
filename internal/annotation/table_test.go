package annotation

import (
	"errors"
	"strings"
	"testing"
)

func TestWriteTable(t *testing.T) {
	out, err := FormatTable(sample())
	if err != nil {
		t.Fatalf("FormatTable: %v", err)
	}
	want := "X, Y, Horizon, Azimuth\n100,100,,\n12,-4,45.25,270\n0,0,-3.5,0\n"
	if out != want {
		t.Errorf("unexpected table:\n%s\nwant:\n%s", out, want)
	}
}

func TestReadTableRoundTrip(t *testing.T) {
	out, err := FormatTable(sample())
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadTable(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	sameDots(t, got, sample())
}

func TestReadTableReorderedColumns(t *testing.T) {
	in := "Azimuth,Horizon,Y,X\n90,10,2,1\n"
	got, err := ReadTable(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(got) != 1 || got[0].X != 1 || got[0].Y != 2 || got[0].Angles.Bearing != 90 {
		t.Errorf("unexpected dots %v", got)
	}
}

func TestReadTableRejectsBadRows(t *testing.T) {
	for _, in := range []string{
		"Horizon,Azimuth\n1,2\n",
		"X,Y\nfoo,2\n",
		"X,Y,Horizon,Azimuth\n1,2,abc,\n",
	} {
		if _, err := ReadTable(strings.NewReader(in)); !errors.Is(err, ErrCorrupt) {
			t.Errorf("%q: expected ErrCorrupt, got %v", in, err)
		}
	}
}
