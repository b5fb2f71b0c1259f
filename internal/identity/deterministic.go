// Package identity derives stable record ids so repeated writes of the same
// user state or published site land on the same row.
package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "sitebuilder"

// UUID hashes key into a UUID with go-hashid. A blank key yields uuid.Nil.
// Keys must carry their own kind prefix; see scoped.
func UUID(key string) uuid.UUID {
	key = strings.TrimSpace(key)
	if key == "" {
		return uuid.Nil
	}
	id, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err == nil && id != uuid.Nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

func scoped(kind string, parts ...string) uuid.UUID {
	key := namespace + ":" + kind
	for _, part := range parts {
		key += ":" + strings.TrimSpace(part)
	}
	return UUID(key)
}

// StateUUID identifies the state row of a "user:key" scope.
func StateUUID(scope string) uuid.UUID {
	return scoped("state", scope)
}

// SiteUUID identifies the published site of a user's project.
func SiteUUID(userID, projectID string) uuid.UUID {
	return scoped("site", userID, projectID)
}

// SitePageUUID identifies a page of a site. Slugs compare case-insensitively.
func SitePageUUID(siteID uuid.UUID, slug string) uuid.UUID {
	return scoped("site_page", siteID.String(), strings.ToLower(slug))
}
