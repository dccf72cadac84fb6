package service

import (
	"reflect"
	"testing"
)

func TestSampleTimestamps(t *testing.T) {
	tests := []struct {
		name        string
		duration    int
		maxFrames   int
		minInterval int
		want        []int
	}{
		{
			name:        "interval from duration over cap",
			duration:    95,
			maxFrames:   10,
			minInterval: 10,
			want:        []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90},
		},
		{
			name:        "short video under min interval",
			duration:    30,
			maxFrames:   10,
			minInterval: 10,
			want:        []int{0, 10, 20},
		},
		{
			name:        "long video capped at max frames",
			duration:    1000,
			maxFrames:   10,
			minInterval: 10,
			want:        []int{0, 100, 200, 300, 400, 500, 600, 700, 800, 900},
		},
		{
			name:        "zero duration yields single frame",
			duration:    0,
			maxFrames:   10,
			minInterval: 10,
			want:        []int{0},
		},
		{
			name:        "duration below interval yields single frame",
			duration:    7,
			maxFrames:   10,
			minInterval: 10,
			want:        []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleTimestamps(tt.duration, tt.maxFrames, tt.minInterval)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sampleTimestamps(%d, %d, %d) = %v, want %v",
					tt.duration, tt.maxFrames, tt.minInterval, got, tt.want)
			}
		})
	}
}

func TestSampleTimestampsNeverExceedsCap(t *testing.T) {
	for duration := 0; duration <= 600; duration += 13 {
		got := sampleTimestamps(duration, 10, 10)
		if len(got) == 0 {
			t.Fatalf("duration %d: no timestamps", duration)
		}
		if len(got) > 10 {
			t.Fatalf("duration %d: %d timestamps exceeds cap", duration, len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i]-got[i-1] < 10 {
				t.Fatalf("duration %d: interval %d below minimum", duration, got[i]-got[i-1])
			}
			if got[i] >= duration {
				t.Fatalf("duration %d: timestamp %d out of range", duration, got[i])
			}
		}
	}
}
