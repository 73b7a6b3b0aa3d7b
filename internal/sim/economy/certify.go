package economy

import "github.com/louisbranch/encore/internal/sim/snapshot"

// Certification thresholds in units. Songs are certified on lifetime
// streams; releases on estimated units (streams / 1500).
const (
	goldUnits     = 500_000
	platinumUnits = 1_000_000
	diamondUnits  = 10_000_000

	// AlbumUnitStreams converts release streams to sale-equivalent units.
	AlbumUnitStreams = 1500
)

// CertificationFor returns the certification earned by a lifetime unit
// count. Multi-platinum and multi-diamond carry an integer multiplier.
func CertificationFor(units int64) snapshot.Certification {
	switch {
	case units >= diamondUnits:
		return snapshot.Certification{Tier: snapshot.CertDiamond, Times: int(units / diamondUnits)}
	case units >= platinumUnits:
		return snapshot.Certification{Tier: snapshot.CertPlatinum, Times: int(units / platinumUnits)}
	case units >= goldUnits:
		return snapshot.Certification{Tier: snapshot.CertGold, Times: 1}
	default:
		return snapshot.Certification{}
	}
}

// CertEvent reports a certification upgrade for announcement.
type CertEvent struct {
	Title         string
	Certification snapshot.Certification
}

// certifySong upgrades a song's certification if its lifetime streams
// crossed a new tier. Certifications never downgrade and are only
// re-announced on change.
func certifySong(song *snapshot.Song) *CertEvent {
	earned := CertificationFor(song.Streams)
	if !earned.Exceeds(song.Certification) {
		return nil
	}
	song.Certification = earned
	return &CertEvent{Title: song.Title, Certification: earned}
}

// certifyRelease upgrades a release's certification from the combined
// streams of its songs converted to units.
func certifyRelease(entity *snapshot.Entity, release *snapshot.Release) *CertEvent {
	var streams int64
	for _, songID := range release.SongIDs {
		if song := entity.SongByID(songID); song != nil {
			streams += song.Streams
		}
	}
	earned := CertificationFor(streams / AlbumUnitStreams)
	if !earned.Exceeds(release.Certification) {
		return nil
	}
	release.Certification = earned
	return &CertEvent{Title: release.Title, Certification: earned}
}
