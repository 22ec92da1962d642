package perftest

import (
	"strings"
)

// Phrase is the text every string and bytes workload is cut from.
const Phrase = "hello world from quickwire!!!"

// GenerateTest1 returns 500 records carrying their index followed by 200
// empty ones.
func GenerateTest1() []*Test1 {
	out := make([]*Test1, 0, 700)
	for i := int32(0); i < 500; i++ {
		v := i
		out = append(out, &Test1{Value: &v})
	}
	for i := 0; i < 200; i++ {
		out = append(out, &Test1{})
	}
	return out
}

func GenerateRepeatedBool() []*TestRepeatedBool {
	out := make([]*TestRepeatedBool, 0, 9)
	for j := 1; j < 10; j++ {
		values := make([]bool, 100)
		for i := range values {
			values[i] = i%j == 0
		}
		out = append(out, &TestRepeatedBool{Values: values})
	}
	return out
}

func GenerateRepeatedPackedInt32() []*TestRepeatedPackedInt32 {
	out := make([]*TestRepeatedPackedInt32, 0, 39)
	for j := int32(1); j < 40; j++ {
		values := make([]int32, 100)
		for i := range values {
			values[i] = int32(i) * j
		}
		out = append(out, &TestRepeatedPackedInt32{Values: values})
	}
	return out
}

// chainIndexes returns the indexes a new record of the nested-message
// workloads copies from, given how many records exist so far.
func chainIndexes(n int) (i1, i2, i3 int) {
	return min(n%3, n-1), min(n%6, n-1), min(n%9, n-1)
}

// GenerateRepeatedMessages builds 11 records, each nesting copies of earlier
// ones, so nesting depth and size grow with the index.
func GenerateRepeatedMessages() []*TestRepeatedMessages {
	out := []*TestRepeatedMessages{{}}
	for k := 0; k < 10; k++ {
		i1, i2, i3 := chainIndexes(len(out))
		m1, m2, m3 := out[i1], out[i2], out[i3]
		out = append(out, &TestRepeatedMessages{
			Messages1: []*TestRepeatedMessages{m1},
			Messages2: []*TestRepeatedMessages{m1, m2},
			Messages3: []*TestRepeatedMessages{m1, m2, m3},
		})
	}
	return out
}

// GenerateOptionalMessages is GenerateRepeatedMessages with singular fields.
func GenerateOptionalMessages() []*TestOptionalMessages {
	out := []*TestOptionalMessages{{}}
	for k := 0; k < 10; k++ {
		i1, i2, i3 := chainIndexes(len(out))
		out = append(out, &TestOptionalMessages{
			Message1: out[i1],
			Message2: out[i2],
			Message3: out[i3],
		})
	}
	return out
}

func GenerateStrings() []*TestStrings {
	out := make([]*TestStrings, 0, 99)
	for i := 1; i < 100; i++ {
		s1, s2, s3 := Phrase, Phrase, Phrase
		out = append(out, &TestStrings{S1: &s1, S2: &s2, S3: &s3})
	}
	return out
}

func GenerateSmallBytes() []*TestBytes {
	out := make([]*TestBytes, 0, 799)
	for i := 1; i < 800; i++ {
		out = append(out, &TestBytes{B1: []byte(Phrase)})
	}
	return out
}

func GenerateLargeBytes() []*TestBytes {
	out := make([]*TestBytes, 0, 29)
	for i := 1; i < 30; i++ {
		out = append(out, &TestBytes{B1: []byte(strings.Repeat(Phrase, 500))})
	}
	return out
}

// GenerateAll returns one PerftestData holding every workload above.
func GenerateAll() []*PerftestData {
	return []*PerftestData{{
		Test1:                   GenerateTest1(),
		TestRepeatedBool:        GenerateRepeatedBool(),
		TestRepeatedMessages:    GenerateRepeatedMessages(),
		TestOptionalMessages:    GenerateOptionalMessages(),
		TestStrings:             GenerateStrings(),
		TestRepeatedPackedInt32: GenerateRepeatedPackedInt32(),
		TestSmallBytearrays:     GenerateSmallBytes(),
		TestLargeBytearrays:     GenerateLargeBytes(),
	}}
}
