package device

import (
	"context"
	"testing"

	"github.com/vrpctl/vrpctl/internal/testutil"
)

const displayVersionOutput = `VRP (R) software, Version 5.170 (S5735 V200R019C00SPC500)
Copyright (C) 2000-2020 HUAWEI TECH Co., Ltd.
Huawei S5735-L24T4X-A Routing Switch
access-sw-01 uptime is 12 weeks, 3 days, 1 hour
`

func TestParseInfo(t *testing.T) {
	info := ParseInfo(displayVersionOutput)

	if info.OSVersion != "5.170" {
		t.Errorf("OSVersion = %q, want 5.170", info.OSVersion)
	}
	if info.Model != "S5735-L24T4X-A" {
		t.Errorf("Model = %q, want S5735-L24T4X-A", info.Model)
	}
	if info.Hostname != "access-sw-01" {
		t.Errorf("Hostname = %q, want access-sw-01", info.Hostname)
	}

	empty := ParseInfo("no useful content")
	if empty != (Info{}) {
		t.Errorf("ParseInfo on junk = %+v, want zero value", empty)
	}
}

func TestFetchInfo(t *testing.T) {
	tr := &testutil.FakeTransport{
		Outputs: map[string]string{"display version": displayVersionOutput},
	}

	info, err := FetchInfo(context.Background(), tr)
	if err != nil {
		t.Fatalf("FetchInfo() error = %v", err)
	}
	if info.OSVersion != "5.170" {
		t.Errorf("OSVersion = %q", info.OSVersion)
	}
	if got := tr.SentTexts(); len(got) != 1 || got[0] != "display version" {
		t.Errorf("sent commands = %v", got)
	}
}
