// Package jobs watches background conversion tasks. A poller queries the job
// status endpoint on a fixed interval until the server reports one of the two
// terminal literals, SUCCESS or FAILURE; any other status keeps the poll
// alive. A tracker layers single-job bookkeeping on top so starting a new
// watch cancels and supersedes the previous one.
package jobs
