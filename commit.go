package render

// trackPair binds a working copy to the original it replaces at
// commit time. Original is nil for tracks added during processing.
type trackPair struct {
	original *Track
	working  *Track
}

// workingSet owns the working copies of eligible tracks for one run.
// The engine processes ws.tracks; the source list is only touched by
// commit.
type workingSet struct {
	source *TrackList
	tracks *TrackList
	pairs  []trackPair
}

// newWorkingSet copies every selected or sync-lock-selected track of
// the source list into a parallel working list.
func newWorkingSet(source *TrackList) *workingSet {
	ws := &workingSet{
		source: source,
		tracks: NewTrackList(),
	}
	for _, t := range source.Tracks() {
		if !t.Selected && !t.SyncLocked {
			continue
		}
		w := t.Clone()
		ws.tracks.Append(w)
		ws.pairs = append(ws.pairs, trackPair{original: t, working: w})
	}
	return ws
}

// add registers a brand-new track produced during processing. It has
// no original and is appended to the source list at commit.
func (ws *workingSet) add(t *Track) {
	ws.tracks.Append(t)
	ws.pairs = append(ws.pairs, trackPair{working: t})
}

// commit replaces originals with their processed copies. The pair
// sequence is walked once: a working copy supersedes its original in
// place, a copy without an original is appended, an original whose
// copy was dropped from the working list is removed.
func (ws *workingSet) commit() {
	for _, p := range ws.pairs {
		switch {
		case !ws.tracks.Contains(p.working):
			if p.original != nil {
				ws.source.Remove(p.original)
			}
		case p.original == nil:
			ws.source.Append(p.working)
		default:
			ws.source.Replace(p.original, p.working)
		}
	}
	ws.pairs = nil
	ws.tracks = NewTrackList()
}

// discard drops all working copies leaving the source untouched.
func (ws *workingSet) discard() {
	ws.pairs = nil
	ws.tracks = NewTrackList()
}
