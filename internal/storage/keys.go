package storage

const (
	// SessionKey holds the current session record.
	SessionKey = "offertrack_user"
	// AccountsKey holds the registered-accounts list.
	AccountsKey = "offertrack_users"

	applicationsPrefix  = "offertrack_applications_"
	interviewsPrefix    = "offertrack_interviews_"
	notificationsPrefix = "notifications_"
)

func ApplicationsKey(accountID string) string  { return applicationsPrefix + accountID }
func InterviewsKey(accountID string) string    { return interviewsPrefix + accountID }
func NotificationsKey(accountID string) string { return notificationsPrefix + accountID }

// AccountKeys lists every per-account key owned by accountID.
func AccountKeys(accountID string) []string {
	return []string{
		ApplicationsKey(accountID),
		InterviewsKey(accountID),
		NotificationsKey(accountID),
	}
}
