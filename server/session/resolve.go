package session

import (
	"strings"
	"sync"
)

// Candidate is a people-picker shaped selection, pending resolution to a
// directory object id.
type Candidate struct {
	Email     string `json:"email"`
	LoginName string `json:"login_name"`
}

// LookupKey derives the directory lookup key: the email claim when present,
// otherwise the part of the login name after the last "|" separator
// (SharePoint login names look like "i:0#.f|membership|user@contoso.com").
func (c Candidate) LookupKey() string {
	if c.Email != "" {
		return c.Email
	}
	if idx := strings.LastIndex(c.LoginName, "|"); idx >= 0 {
		return c.LoginName[idx+1:]
	}
	return c.LoginName
}

// Resolution carries the directory ids that resolved plus the candidates
// that did not, so callers can surface dropped selections.
type Resolution struct {
	UserIDs    []string
	Unresolved []Candidate
}

// resolveCandidates looks every candidate up concurrently. A failed lookup
// only drops its own candidate; the order of UserIDs follows completion
// order, not input order.
func (c *Controller) resolveCandidates(candidates []Candidate) Resolution {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		res Resolution
	)

	for _, candidate := range candidates {
		wg.Add(1)
		go func(candidate Candidate) {
			defer wg.Done()

			key := strings.TrimSpace(candidate.LookupKey())
			if key == "" {
				mu.Lock()
				res.Unresolved = append(res.Unresolved, candidate)
				mu.Unlock()
				return
			}

			user, err := c.client.GetUser(key)
			if err != nil || user.ID == "" {
				if err != nil {
					c.logger.WithError(err).WithField("candidate", key).Warn("Unable to resolve chat owner candidate")
				}
				mu.Lock()
				res.Unresolved = append(res.Unresolved, candidate)
				mu.Unlock()
				return
			}

			mu.Lock()
			res.UserIDs = append(res.UserIDs, user.ID)
			mu.Unlock()
		}(candidate)
	}

	wg.Wait()
	return res
}
