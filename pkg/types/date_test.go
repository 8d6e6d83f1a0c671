package types

import (
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/assert"
)

func TestDate_Format(t *testing.T) {
	tests := []struct {
		name string
		date Date
		want string
	}{
		{name: "regular date", date: "2024-01-15", want: "Jan 15, 2024"},
		{name: "single digit day", date: "2023-12-01", want: "Dec 1, 2023"},
		{name: "leap day", date: "2024-02-29", want: "Feb 29, 2024"},
		{name: "not a date", date: "yesterday", want: "yesterday"},
		{name: "invalid day", date: "2023-02-30", want: "2023-02-30"},
		{name: "empty", date: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.Format())
		})
	}
}

func TestParseDate(t *testing.T) {
	type testCase struct {
		name    string
		raw     string
		want    Date
		wantErr bool
	}
	tests := []func() testCase{
		func() testCase {
			raw := faker.Date()
			return testCase{name: "valid date", raw: raw, want: Date(raw)}
		},
		func() testCase {
			return testCase{name: "invalid date", raw: "2024/01/15", wantErr: true}
		},
		func() testCase {
			return testCase{name: "word", raw: faker.Word(), wantErr: true}
		},
	}
	for _, tt := range tests {
		tt := tt()
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.raw, got.Value())
		})
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("test", 3*60*60)
	assert.Equal(t, Date("2024-03-05"), DateOf(time.Date(2024, 3, 5, 23, 30, 0, 0, loc)))
}

func TestDate_Time(t *testing.T) {
	got, err := Date("2024-03-05").Time()
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)
}
