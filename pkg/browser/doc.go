// Package browser provides the Playwright session layer for home-view
// verification.
//
// A Session owns a headless Chromium instance together with its browsing
// context and page, acquired through Launch and released through Close.
// Close is safe on every exit path and idempotent.
//
// The package exposes exactly the capability set the verification needs:
//
//   - Navigate: load the target URL with a bounded wait
//   - WaitForRole: locate an element by ARIA role and accessible name,
//     waiting for visibility with an explicit timeout; a timeout is a
//     typed NotFound outcome, not an error
//   - ClickRole: activate a role-located element
//   - TextVisible: probe whether a text match is currently visible
//   - Screenshot: persist a full-page PNG capture
//   - VisibleText: cleaned visible page text for failure diagnostics
package browser
