package cbor

// MapSearchSpec describes one label to look for in GetItemsInMap /
// GetItemsInMapWithCallback. Callers build a slice of these, one per
// field they want out of a map, and the map is scanned once for all of
// them rather than once per field.
type MapSearchSpec struct {
	Label Label

	// TypeFilter restricts which item type is acceptable for this
	// label; AnyType accepts whatever is found, and IntItemType also
	// accepts a non-negative integer that fits in int64.
	TypeFilter ItemType

	// Found reports whether Label was present after the scan.
	Found bool

	// Item holds the decoded value when Found is true.
	Item Item
}

// IntSearchSpec builds a MapSearchSpec for an integer label.
func IntSearchSpec(label int64, typeFilter ItemType) MapSearchSpec {
	return MapSearchSpec{Label: IntLabel(label), TypeFilter: typeFilter}
}

// TextSearchSpec builds a MapSearchSpec for a text label.
func TextSearchSpec(label string, typeFilter ItemType) MapSearchSpec {
	return MapSearchSpec{Label: TextLabel(label), TypeFilter: typeFilter}
}

// ItemCallback is invoked by GetItemsInMapWithCallback for every map
// entry whose label does not match any MapSearchSpec in the list.
// Returning a non-nil error aborts the whole scan; wrap a caller-defined
// sentinel with NewCallbackFailError to recover it afterward.
type ItemCallback func(userData any, label Label, item Item) error

// labelFromItem extracts a Label from a decoded map key item. Only plain
// integer and text keys are comparable labels; anything else (a byte
// string key, a nested map key, ...) never matches a search and is
// reported via ok=false.
func labelFromItem(it Item) (Label, bool) {
	switch it.Type {
	case IntItemType:
		return IntLabel(it.Int64), true
	case UintItemType:
		if it.Uint64 > maxInt64AsUint64 {
			return Label{}, false
		}
		return IntLabel(int64(it.Uint64)), true
	case TextStringType:
		return TextLabel(it.Text), true
	default:
		return Label{}, false
	}
}

const maxInt64AsUint64 = 1<<63 - 1

// typeFilterAccepts reports whether it satisfies filter. An IntItemType
// filter also accepts a UintItemType value that fits in int64; such an
// item is rewritten in place as IntItemType with Int64 set.
func typeFilterAccepts(filter ItemType, it *Item) bool {
	if filter == AnyType || it.Type == filter {
		return true
	}
	if filter == IntItemType && it.Type == UintItemType && it.Uint64 <= maxInt64AsUint64 {
		it.Type = IntItemType
		it.Int64 = int64(it.Uint64)
		return true
	}
	return false
}

// scanMapForLabel performs one non-indexed linear scan of f's entries
// looking for label, returning the byte slice positioned at the start of
// its value. Scanning never mutates dc.cur: map-search is independent of
// and repeatable relative to the sequential GetNextWithTags cursor.
func (dc *DecodeContext) scanMapForLabel(f *nestingFrame, label Label) ([]byte, error) {
	p := f.mapBody
	found := false
	var foundValue []byte
	count := uint32(0)

	for {
		if f.indefinite {
			if len(p) < 1 {
				return nil, ErrShortBytes
			}
			if p[0] == makeByte(majorTypeSimple, simpleBreak) {
				break
			}
		} else if count >= f.mapPairCount {
			break
		}

		keyItem, afterKey, err := dc.decodeOneFrom(p)
		if err != nil {
			return nil, err
		}
		valueStart := afterKey
		afterValue, err := Skip(valueStart)
		if err != nil {
			return nil, err
		}

		if thisLabel, ok := labelFromItem(keyItem); ok && thisLabel.equal(label) {
			if found {
				return nil, ErrDuplicateLabel
			}
			found = true
			foundValue = valueStart
		}

		p = afterValue
		count++
	}

	if !found {
		return nil, ErrLabelNotFound
	}
	return foundValue, nil
}

// getItemInMap is the shared core behind GetItemInMapN/SZ.
func (dc *DecodeContext) getItemInMap(label Label, typeFilter ItemType) (Item, error) {
	if !dc.ok() {
		return Item{}, dc.err
	}
	f := dc.topFrame()
	if f == nil || f.kind != frameMap {
		err := ErrMapNotEntered
		dc.setError(err)
		return Item{}, err
	}
	valueBytes, err := dc.scanMapForLabel(f, label)
	if err != nil {
		dc.setError(err)
		return Item{}, err
	}
	item, _, err := dc.decodeOneFrom(valueBytes)
	if err != nil {
		dc.setError(err)
		return Item{}, err
	}
	if !typeFilterAccepts(typeFilter, &item) {
		err := ErrUnexpectedType
		dc.setError(err)
		return Item{}, err
	}
	return item, nil
}

// getInMap adapts getItemInMap to the (Item, bool) shape typed getters
// share with the at-cursor path.
func (dc *DecodeContext) getInMap(label Label, typeFilter ItemType) (Item, bool) {
	item, err := dc.getItemInMap(label, typeFilter)
	return item, err == nil
}

// GetItemInMapN looks up an integer-labeled entry in the currently
// entered map.
func (dc *DecodeContext) GetItemInMapN(label int64, typeFilter ItemType) (Item, error) {
	return dc.getItemInMap(IntLabel(label), typeFilter)
}

// GetItemInMapSZ looks up a text-labeled entry in the currently entered
// map.
func (dc *DecodeContext) GetItemInMapSZ(label string, typeFilter ItemType) (Item, error) {
	return dc.getItemInMap(TextLabel(label), typeFilter)
}

// GetItemsInMap resolves every MapSearchSpec in list with a single pass
// over the currently entered map, setting Found/Item on each. A label
// present more than once sets the sticky ErrDuplicateLabel; a label
// whose item doesn't satisfy its TypeFilter sets ErrUnexpectedType.
// Unmatched labels are simply left with Found=false - unlike
// GetItemInMapN, a missing label here is not itself an error, since
// callers commonly ask for several optional fields at once.
func (dc *DecodeContext) GetItemsInMap(list []MapSearchSpec) error {
	return dc.getItemsInMap(list, nil, nil)
}

// GetItemsInMapWithCallback behaves like GetItemsInMap but additionally
// invokes cb for every entry whose label matches none of list. cb
// returning an error aborts the scan and becomes the sticky error.
func (dc *DecodeContext) GetItemsInMapWithCallback(list []MapSearchSpec, userData any, cb ItemCallback) error {
	return dc.getItemsInMap(list, userData, cb)
}

func (dc *DecodeContext) getItemsInMap(list []MapSearchSpec, userData any, cb ItemCallback) error {
	if !dc.ok() {
		return dc.err
	}
	f := dc.topFrame()
	if f == nil || f.kind != frameMap {
		dc.setError(ErrMapNotEntered)
		return dc.err
	}

	p := f.mapBody
	count := uint32(0)

	for {
		if f.indefinite {
			if len(p) < 1 {
				dc.setError(ErrShortBytes)
				return dc.err
			}
			if p[0] == makeByte(majorTypeSimple, simpleBreak) {
				break
			}
		} else if count >= f.mapPairCount {
			break
		}

		keyItem, afterKey, err := dc.decodeOneFrom(p)
		if err != nil {
			dc.setError(err)
			return dc.err
		}
		valItem, _, err := dc.decodeOneFrom(afterKey)
		if err != nil {
			dc.setError(err)
			return dc.err
		}
		afterValue, err := Skip(afterKey)
		if err != nil {
			dc.setError(err)
			return dc.err
		}

		label, hasLabel := labelFromItem(keyItem)
		matched := false
		if hasLabel {
			for i := range list {
				if !list[i].Label.equal(label) {
					continue
				}
				matched = true
				if list[i].Found {
					dc.setError(ErrDuplicateLabel)
					return dc.err
				}
				if !typeFilterAccepts(list[i].TypeFilter, &valItem) {
					dc.setError(ErrUnexpectedType)
					return dc.err
				}
				list[i].Found = true
				list[i].Item = valItem
			}
		}

		if !matched && cb != nil {
			if err := cb(userData, label, valItem); err != nil {
				dc.setError(err)
				return dc.err
			}
		}

		p = afterValue
		count++
	}

	return nil
}
