/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package common

import (
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Common utils", func() {
	Describe("ListDelta utility", func() {
		Context("with list data", func() {
			It("should split new and stale elements", func() {
				type args struct {
					a []string
					b []string
				}
				tests := []struct {
					name        string
					args        args
					wantAdded   []string
					wantRemoved []string
					wantSame    []string
				}{
					{name: "disjoint",
						args:        args{a: []string{"vol0"}, b: []string{"vol1"}},
						wantAdded:   []string{"vol1"},
						wantRemoved: []string{"vol0"},
						wantSame:    []string{}},
					{name: "identical",
						args:        args{a: []string{"vol0", "vol1"}, b: []string{"vol0", "vol1"}},
						wantAdded:   []string{},
						wantRemoved: []string{},
						wantSame:    []string{"vol0", "vol1"}},
					{name: "partial-overlap",
						args:        args{a: []string{"vol0", "vol1"}, b: []string{"vol1", "vol2"}},
						wantAdded:   []string{"vol2"},
						wantRemoved: []string{"vol0"},
						wantSame:    []string{"vol1"}},
					{name: "empty-desired",
						args:        args{a: []string{"vol0"}, b: []string{}},
						wantAdded:   []string{},
						wantRemoved: []string{"vol0"},
						wantSame:    []string{}},
				}
				for _, tt := range tests {
					added, removed, same := ListDelta(tt.args.a, tt.args.b)
					Expect(reflect.DeepEqual(added, tt.wantAdded)).To(BeTrue())
					Expect(reflect.DeepEqual(removed, tt.wantRemoved)).To(BeTrue())
					Expect(reflect.DeepEqual(same, tt.wantSame)).To(BeTrue())
				}
			})
		})
	})

	Describe("ListChanged utility", func() {
		Context("with list data", func() {
			It("should detect membership differences", func() {
				Expect(ListChanged(nil, nil)).To(BeFalse())
				Expect(ListChanged([]string{"host0"}, []string{"host0"})).To(BeFalse())
				Expect(ListChanged([]string{"host0"}, []string{"host1"})).To(BeTrue())
				Expect(ListChanged([]string{"host0"}, nil)).To(BeTrue())
				Expect(ListChanged([]string{"host0", "host1"}, []string{"host1", "host0"})).To(BeFalse())
			})
		})
	})

	Describe("DedupeSlice utility", func() {
		Context("with duplicated elements", func() {
			It("should preserve order and drop duplicates", func() {
				got := DedupeSlice([]string{"a", "b", "a", "c", "b"})
				Expect(got).To(Equal([]string{"a", "b", "c"}))
			})
		})
	})

	Describe("ParseSize utility", func() {
		Context("with size data", func() {
			It("should scale by powers of two", func() {
				type args struct {
					value string
				}
				tests := []struct {
					name    string
					args    args
					want    int64
					wantErr bool
				}{
					{name: "mebibytes",
						args: args{value: "50M"},
						want: 50 * 1024 * 1024},
					{name: "tebibytes",
						args: args{value: "1T"},
						want: 1024 * 1024 * 1024 * 1024},
					{name: "bare-bytes",
						args: args{value: "1048576"},
						want: 1048576},
					{name: "invalid",
						args:    args{value: "fifty"},
						wantErr: true},
				}
				for _, tt := range tests {
					got, err := ParseSize(tt.args.value)
					if tt.wantErr {
						Expect(err).To(HaveOccurred())
					} else {
						Expect(err).To(BeNil())
						Expect(got).To(Equal(tt.want))
					}
				}
			})
		})
	})

	Describe("ParseIOPS utility", func() {
		Context("with count data", func() {
			It("should scale by powers of ten", func() {
				got, err := ParseIOPS("100K")
				Expect(err).To(BeNil())
				Expect(got).To(Equal(int64(100000)))

				got, err = ParseIOPS("2M")
				Expect(err).To(BeNil())
				Expect(got).To(Equal(int64(2000000)))

				_, err = ParseIOPS("lots")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("ParseTimeOfDay utility", func() {
		Context("with clock time data", func() {
			It("should convert to milliseconds since midnight", func() {
				type args struct {
					value string
				}
				tests := []struct {
					name    string
					args    args
					want    int64
					wantErr bool
				}{
					{name: "am-pm",
						args: args{value: "3PM"},
						want: 15 * 3600 * 1000},
					{name: "twenty-four-hour",
						args: args{value: "15:30"},
						want: (15*3600 + 30*60) * 1000},
					{name: "midnight",
						args: args{value: "00:00"},
						want: 0},
					{name: "invalid",
						args:    args{value: "noonish"},
						wantErr: true},
				}
				for _, tt := range tests {
					got, err := ParseTimeOfDay(tt.args.value)
					if tt.wantErr {
						Expect(err).To(HaveOccurred())
					} else {
						Expect(err).To(BeNil())
						Expect(got).To(Equal(tt.want))
					}
				}
			})

			It("should round trip through FormatTimeOfDay", func() {
				ms, err := ParseTimeOfDay("3PM")
				Expect(err).To(BeNil())
				Expect(FormatTimeOfDay(ms)).To(Equal("3PM"))

				ms, err = ParseTimeOfDay("15:30")
				Expect(err).To(BeNil())
				Expect(FormatTimeOfDay(ms)).To(Equal("15:30"))
			})
		})
	})

	Describe("ParseFrequency utility", func() {
		Context("with duration data", func() {
			It("should convert to milliseconds", func() {
				got, err := ParseFrequency("24h")
				Expect(err).To(BeNil())
				Expect(got).To(Equal(int64(24 * 3600 * 1000)))

				got, err = ParseFrequency("15m")
				Expect(err).To(BeNil())
				Expect(got).To(Equal(int64(15 * 60 * 1000)))

				_, err = ParseFrequency("-1h")
				Expect(err).To(HaveOccurred())

				_, err = ParseFrequency("weekly")
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
