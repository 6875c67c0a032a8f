// Package metrics exports pool statistics to Prometheus.
//
// Pools keep plain counters and never touch Prometheus on their hot paths.
// A Registry reads those counters when it is scraped.
package metrics

import (
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/joshuapare/miniptr/slab"
	"github.com/joshuapare/miniptr/slice"
)

// SlabSource is the part of a slab pool a Registry reads.
type SlabSource interface {
	Stats() slab.Stats
	TotalSlots() int
	FreeSlots() int
	Capacity() int
}

// SliceSource is the part of a slice pool a Registry reads.
type SliceSource interface {
	Stats() slice.Stats
	Len() int
	Cap() int
}

// Registry collects metrics from the pools it watches.
type Registry struct {
	registry *prometheus.Registry
	pools    *poolCollector
}

// NewRegistry creates a registry with no watched pools.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		pools:    newPoolCollector(),
	}
	r.registry.MustRegister(r.pools)
	return r
}

// Prometheus returns the underlying registry for use with promhttp.
func (r *Registry) Prometheus() *prometheus.Registry { return r.registry }

// WatchSlab reports src under the pool label name. Watching a name again
// replaces the previous source.
func (r *Registry) WatchSlab(name string, src SlabSource) {
	r.pools.slabs[name] = src
}

// WatchSlice reports src under the pool label name.
func (r *Registry) WatchSlice(name string, src SliceSource) {
	r.pools.slices[name] = src
}

// WriteText gathers every metric and writes it in the Prometheus text
// exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

type poolCollector struct {
	slabs  map[string]SlabSource
	slices map[string]SliceSource

	slabSlots     *prometheus.Desc
	slabFree      *prometheus.Desc
	slabCapacity  *prometheus.Desc
	slabInserts   *prometheus.Desc
	slabReused    *prometheus.Desc
	slabRemoves   *prometheus.Desc
	slabExhausted *prometheus.Desc

	sliceElements *prometheus.Desc
	sliceCapacity *prometheus.Desc
	sliceAllocs   *prometheus.Desc
	sliceSplits   *prometheus.Desc
	sliceGrows    *prometheus.Desc
	sliceDeallocs *prometheus.Desc
	sliceLeaked   *prometheus.Desc
	sliceFailed   *prometheus.Desc
}

func newPoolCollector() *poolCollector {
	pool := []string{"pool"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("miniptr_"+name, help, pool, nil)
	}
	return &poolCollector{
		slabs:  make(map[string]SlabSource),
		slices: make(map[string]SliceSource),

		slabSlots:     desc("slab_slots", "Slots in the backing slice, live or free"),
		slabFree:      desc("slab_free_slots", "Slots on the free list"),
		slabCapacity:  desc("slab_capacity", "Slots the backing slice can hold without reallocating"),
		slabInserts:   desc("slab_inserts_total", "Successful inserts"),
		slabReused:    desc("slab_reused_total", "Inserts served from the free list"),
		slabRemoves:   desc("slab_removes_total", "Successful removes"),
		slabExhausted: desc("slab_exhausted_total", "Inserts rejected because every key was in use"),

		sliceElements: desc("slice_elements", "Elements in the backing buffer, live or free"),
		sliceCapacity: desc("slice_capacity", "Capacity of the backing buffer"),
		sliceAllocs:   desc("slice_allocs_total", "Successful range allocations"),
		sliceSplits:   desc("slice_splits_total", "Blocks split to refill a smaller class"),
		sliceGrows:    desc("slice_grows_total", "Allocations that grew the backing buffer"),
		sliceDeallocs: desc("slice_deallocs_total", "Ranges returned to the pool"),
		sliceLeaked:   desc("slice_leaked_units_total", "Elements lost to tails smaller than any class"),
		sliceFailed:   desc("slice_failed_total", "Allocations that returned an error"),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.slabSlots, c.slabFree, c.slabCapacity, c.slabInserts, c.slabReused, c.slabRemoves, c.slabExhausted,
		c.sliceElements, c.sliceCapacity, c.sliceAllocs, c.sliceSplits, c.sliceGrows, c.sliceDeallocs, c.sliceLeaked, c.sliceFailed,
	} {
		ch <- d
	}
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	gauge := func(d *prometheus.Desc, v int, name string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v), name)
	}
	counter := func(d *prometheus.Desc, v uint64, name string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), name)
	}

	for _, name := range sortedKeys(c.slabs) {
		src := c.slabs[name]
		st := src.Stats()
		gauge(c.slabSlots, src.TotalSlots(), name)
		gauge(c.slabFree, src.FreeSlots(), name)
		gauge(c.slabCapacity, src.Capacity(), name)
		counter(c.slabInserts, st.Inserts, name)
		counter(c.slabReused, st.Reused, name)
		counter(c.slabRemoves, st.Removes, name)
		counter(c.slabExhausted, st.Exhausted, name)
	}

	for _, name := range sortedKeys(c.slices) {
		src := c.slices[name]
		st := src.Stats()
		gauge(c.sliceElements, src.Len(), name)
		gauge(c.sliceCapacity, src.Cap(), name)
		counter(c.sliceAllocs, st.Allocs, name)
		counter(c.sliceSplits, st.Splits, name)
		counter(c.sliceGrows, st.Grows, name)
		counter(c.sliceDeallocs, st.Deallocs, name)
		counter(c.sliceLeaked, st.LeakedUnits, name)
		counter(c.sliceFailed, st.Failed, name)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
