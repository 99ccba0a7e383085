package model

import "sort"

// YearBucket is the ordered list of flyers for one four-digit year.
//
// Flyers keep the natural filename order produced by the scanner.
type YearBucket struct {
	Year   string
	Flyers []Flyer
}

// Catalog is the full flyer set, one bucket per year.
//
// Buckets are always kept sorted by year, ascending. The zero value is an
// empty catalog ready to use.
type Catalog struct {
	buckets []YearBucket
}

// Put stores the flyers for year, replacing any existing bucket with that key.
func (c *Catalog) Put(year string, flyers []Flyer) {
	i := sort.Search(len(c.buckets), func(i int) bool { return c.buckets[i].Year >= year })
	if i < len(c.buckets) && c.buckets[i].Year == year {
		c.buckets[i].Flyers = flyers
		return
	}
	c.buckets = append(c.buckets, YearBucket{})
	copy(c.buckets[i+1:], c.buckets[i:])
	c.buckets[i] = YearBucket{Year: year, Flyers: flyers}
}

// Buckets returns the buckets in ascending year order.
// The returned slice must not be modified.
func (c *Catalog) Buckets() []YearBucket {
	return c.buckets
}

// Bucket returns the bucket for year.
func (c *Catalog) Bucket(year string) (YearBucket, bool) {
	for _, b := range c.buckets {
		if b.Year == year {
			return b, true
		}
	}
	return YearBucket{}, false
}

// Years returns the bucket keys in ascending order.
func (c *Catalog) Years() []string {
	years := make([]string, len(c.buckets))
	for i, b := range c.buckets {
		years[i] = b.Year
	}
	return years
}

// Total returns the number of flyers across all buckets.
func (c *Catalog) Total() int {
	n := 0
	for _, b := range c.buckets {
		n += len(b.Flyers)
	}
	return n
}

// Empty reports whether the catalog holds no buckets.
func (c *Catalog) Empty() bool {
	return len(c.buckets) == 0
}
