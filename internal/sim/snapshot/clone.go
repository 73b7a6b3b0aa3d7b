package snapshot

// Clone returns a deep copy. Transitions clone the prior snapshot and
// mutate the copy, so the snapshot handed to a caller is never touched
// again.
//
// Nil slices and maps stay nil so a clone deep-equals its source.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Date:           s.Date,
		ActiveEntityID: s.ActiveEntityID,
		Roster:         append([]string(nil), s.Roster...),
		NPC:            s.NPC.clone(),
	}
	if s.Entities != nil {
		out.Entities = make(map[string]*Entity, len(s.Entities))
		for id, entity := range s.Entities {
			out.Entities[id] = entity.clone()
		}
	}
	if s.Charts != nil {
		out.Charts = make(map[string]*Chart, len(s.Charts))
		for kind, chart := range s.Charts {
			out.Charts[kind] = chart.clone()
		}
	}
	if s.Awards != nil {
		out.Awards = make(map[string]*AwardCycle, len(s.Awards))
		for show, cycle := range s.Awards {
			out.Awards[show] = cycle.clone()
		}
	}
	if s.PendingRenewal != nil {
		prompt := *s.PendingRenewal
		out.PendingRenewal = &prompt
	}
	return out
}

func (n NPCState) clone() NPCState {
	out := NPCState{
		Songs:   append([]NPCSong(nil), n.Songs...),
		NextSeq: n.NextSeq,
	}
	if n.Albums != nil {
		out.Albums = make([]NPCAlbum, len(n.Albums))
		for i, album := range n.Albums {
			album.SongIDs = append([]string(nil), album.SongIDs...)
			out.Albums[i] = album
		}
	}
	return out
}

func (c *Chart) clone() *Chart {
	if c == nil {
		return nil
	}
	out := &Chart{}
	if c.Entries != nil {
		out.Entries = make([]ChartEntry, len(c.Entries))
		for i, entry := range c.Entries {
			if entry.LastWeek != nil {
				last := *entry.LastWeek
				entry.LastWeek = &last
			}
			out.Entries[i] = entry
		}
	}
	if c.History != nil {
		out.History = make(map[string]ChartHistory, len(c.History))
		for key, history := range c.History {
			out.History[key] = history
		}
	}
	return out
}

func (a *AwardCycle) clone() *AwardCycle {
	if a == nil {
		return nil
	}
	out := *a
	out.Nominees = append([]AwardNominee(nil), a.Nominees...)
	return &out
}

func (e *Entity) clone() *Entity {
	if e == nil {
		return nil
	}
	out := *e

	if e.Songs != nil {
		out.Songs = make([]Song, len(e.Songs))
		for i, song := range e.Songs {
			if song.ReleasedOn != nil {
				released := *song.ReleasedOn
				song.ReleasedOn = &released
			}
			if song.Leak != nil {
				leak := *song.Leak
				song.Leak = &leak
			}
			out.Songs[i] = song
		}
	}

	if e.Releases != nil {
		out.Releases = make([]Release, len(e.Releases))
		for i, release := range e.Releases {
			release.SongIDs = append([]string(nil), release.SongIDs...)
			if release.ReviewScore != nil {
				score := *release.ReviewScore
				release.ReviewScore = &score
			}
			out.Releases[i] = release
		}
	}

	out.Videos = append([]Video(nil), e.Videos...)

	if e.Contract != nil {
		contract := *e.Contract
		out.Contract = &contract
	}

	if e.Submissions != nil {
		out.Submissions = make([]Submission, len(e.Submissions))
		for i, submission := range e.Submissions {
			submission.SongIDs = append([]string(nil), submission.SongIDs...)
			submission.PreSingleIDs = append([]string(nil), submission.PreSingleIDs...)
			if submission.ScheduledFor != nil {
				scheduled := *submission.ScheduledFor
				submission.ScheduledFor = &scheduled
			}
			out.Submissions[i] = submission
		}
	}

	out.Inbox = append([]Email(nil), e.Inbox...)
	out.Social = e.Social.clone()

	if e.Tours != nil {
		out.Tours = make([]Tour, len(e.Tours))
		for i, tour := range e.Tours {
			tour.Venues = append([]Venue(nil), tour.Venues...)
			if tour.StartedOn != nil {
				started := *tour.StartedOn
				tour.StartedOn = &started
			}
			out.Tours[i] = tour
		}
	}

	if e.Manager != nil {
		manager := *e.Manager
		out.Manager = &manager
	}
	if e.Security != nil {
		security := *e.Security
		out.Security = &security
	}

	out.Promotions = append([]Promotion(nil), e.Promotions...)
	out.Offers = append([]Offer(nil), e.Offers...)

	if e.OfferCountdowns != nil {
		out.OfferCountdowns = make(map[OfferKind]int, len(e.OfferCountdowns))
		for kind, weeks := range e.OfferCountdowns {
			out.OfferCountdowns[kind] = weeks
		}
	}

	out.Awards = AwardRecord{
		Nominations: append([]AwardWin(nil), e.Awards.Nominations...),
		Wins:        append([]AwardWin(nil), e.Awards.Wins...),
	}
	if e.Awards.Submissions != nil {
		out.Awards.Submissions = make(map[string][]string, len(e.Awards.Submissions))
		for show, ids := range e.Awards.Submissions {
			out.Awards.Submissions[show] = append([]string(nil), ids...)
		}
	}

	return &out
}

func (s Social) clone() Social {
	out := s
	out.Posts = append([]Post(nil), s.Posts...)
	out.Following = append([]string(nil), s.Following...)
	out.Trends = append([]string(nil), s.Trends...)
	if s.Appeal != nil {
		appeal := *s.Appeal
		out.Appeal = &appeal
	}
	if s.Users != nil {
		out.Users = make(map[string]SocialUser, len(s.Users))
		for username, user := range s.Users {
			out.Users[username] = user
		}
	}
	if s.Threads != nil {
		out.Threads = make(map[string][]Message, len(s.Threads))
		for username, thread := range s.Threads {
			out.Threads[username] = append([]Message(nil), thread...)
		}
	}
	return out
}
