package spatialindex

import (
	"math"

	"github.com/tidwall/rtree"

	"github.com/tracknav/tracknav/pkg/geo"
)

// SegmentIndex. r-tree over the segments of a route polyline, used to find the
// distance from a position to the nearest part of the route.
type SegmentIndex struct {
	tr       *rtree.RTreeG[segment]
	segments []segment
}

type segment struct {
	a geo.Coordinate
	b geo.Coordinate
}

// NewSegmentIndex builds the index, with each leaf bounding box padded by
// boundingBoxRadius meters around the segment endpoints.
func NewSegmentIndex(geometry []geo.Coordinate, boundingBoxRadius float64) *SegmentIndex {
	var tr rtree.RTreeG[segment]
	si := &SegmentIndex{
		tr:       &tr,
		segments: make([]segment, 0, len(geometry)-1),
	}

	for i := 0; i < len(geometry)-1; i++ {
		seg := segment{a: geometry[i], b: geometry[i+1]}
		si.segments = append(si.segments, seg)

		lowerALat, lowerALon := geo.GetDestinationPoint(seg.a.GetLat(), seg.a.GetLon(), 225, boundingBoxRadius)
		upperALat, upperALon := geo.GetDestinationPoint(seg.a.GetLat(), seg.a.GetLon(), 45, boundingBoxRadius)
		lowerBLat, lowerBLon := geo.GetDestinationPoint(seg.b.GetLat(), seg.b.GetLon(), 225, boundingBoxRadius)
		upperBLat, upperBLon := geo.GetDestinationPoint(seg.b.GetLat(), seg.b.GetLon(), 45, boundingBoxRadius)

		minLat := math.Min(lowerALat, lowerBLat)
		minLon := math.Min(lowerALon, lowerBLon)
		maxLat := math.Max(upperALat, upperBLat)
		maxLon := math.Max(upperALon, upperBLon)

		si.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, seg)
	}

	return si
}

/*
DistanceToNearestSegment. minimum distance in meters from (qLat, qLon) to the
indexed polyline. Searches the r-tree within searchRadius meters first and only
falls back to a scan over all segments when the query point lies outside every
bounding box.
*/
func (si *SegmentIndex) DistanceToNearestSegment(qLat, qLon, searchRadius float64) float64 {
	point := geo.NewCoordinate(qLat, qLon)

	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, searchRadius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, searchRadius)

	minDist := math.Inf(1)
	si.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, seg segment) bool {
			d := geo.DistanceToSegment(point, seg.a, seg.b)
			if d < minDist {
				minDist = d
			}
			return true
		})

	if !math.IsInf(minDist, 1) {
		return minDist
	}

	for _, seg := range si.segments {
		d := geo.DistanceToSegment(point, seg.a, seg.b)
		if d < minDist {
			minDist = d
		}
	}
	return minDist
}

func (si *SegmentIndex) NumSegments() int {
	return len(si.segments)
}
