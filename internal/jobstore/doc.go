// Package jobstore persists background conversion jobs in SQLite so queued
// tasks survive CLI invocations. The store records a job when a background
// conversion is accepted and updates it as polling observes progress, which
// lets "jobs list" show history and "jobs watch" resume a task started by an
// earlier command.
package jobstore
