package render

import "github.com/rs/xid"

// Track is a single channel of audio with its selection attributes.
// Stereo material is a pair of tracks, ChannelFrontLeft immediately
// followed by its ChannelFrontRight partner in the list.
type Track struct {
	id         string
	Name       string
	Channel    ChannelName
	Selected   bool
	SyncLocked bool
	Data       Audio
}

// NewTrack creates a track over audio data.
func NewTrack(name string, channel ChannelName, data Audio) *Track {
	return &Track{
		id:      xid.New().String(),
		Name:    name,
		Channel: channel,
		Data:    data,
	}
}

// ID returns track identity. A working copy shares identity with the
// original it was cloned from.
func (t *Track) ID() string {
	return t.id
}

// Clone returns a working copy of the track with duplicated audio.
func (t *Track) Clone() *Track {
	c := *t
	if t.Data != nil {
		c.Data = t.Data.Clone()
	}
	return &c
}

// TrackList is an ordered list of tracks.
type TrackList struct {
	tracks []*Track
}

// NewTrackList creates a list of passed tracks.
func NewTrackList(tracks ...*Track) *TrackList {
	l := &TrackList{}
	for _, t := range tracks {
		l.Append(t)
	}
	return l
}

// Len returns the number of tracks in the list.
func (l *TrackList) Len() int {
	return len(l.tracks)
}

// Tracks returns a snapshot of the list, safe to iterate while the
// list is mutated.
func (l *TrackList) Tracks() []*Track {
	return append([]*Track(nil), l.tracks...)
}

// Append adds a track to the end of the list.
func (l *TrackList) Append(t *Track) {
	if t != nil {
		l.tracks = append(l.tracks, t)
	}
}

// Remove deletes a track from the list preserving the order of the
// rest. It returns false if the track is not in the list.
func (l *TrackList) Remove(t *Track) bool {
	for i := range l.tracks {
		if l.tracks[i] == t {
			l.tracks = append(l.tracks[:i], l.tracks[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps old for new at the same list position. It returns
// false if old is not in the list.
func (l *TrackList) Replace(old, new *Track) bool {
	for i := range l.tracks {
		if l.tracks[i] == old {
			l.tracks[i] = new
			return true
		}
	}
	return false
}

// Contains reports whether the track is in the list.
func (l *TrackList) Contains(t *Track) bool {
	for i := range l.tracks {
		if l.tracks[i] == t {
			return true
		}
	}
	return false
}
