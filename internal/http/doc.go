// Package http exposes the site builder over JSON.
//
// Public endpoints mount under /api:
//   - Generation and images: /generate-content, /fetch-image
//   - Published websites: /websites
//   - Onboarding: /profile
//   - Current website: /website, /website/generate, /website/export, /projects
//   - Section catalog: /sections
//   - Editor: /editor, /editor/events, /editor/sections,
//     /editor/blocks/{id}, /editor/blocks/{id}/content, /editor/blocks/{id}/styles,
//     /editor/blocks/{id}/move, /editor/blocks/{id}/regenerate
//
// Requests are scoped to the user resolved by the Identity middleware.
// Host applications can register handlers on their own mux as needed.
package http
