package telegram

const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgUnknownCommand = "I don't know that command. Send /help to see what I can do."
	msgUseCommands    = "Send /help to see the available commands."

	msgWelcome = `<b>Welcome to Quizzible, %s!</b>

Learn scripture verses and test yourself on them.

1. Mark the verses you know: /know John 3 16
2. Take a quiz: /quiz
3. Read a chapter: /learn John 3

Send /help for every command.`

	msgWelcomeBack = "<b>Welcome back, %s!</b>\n\nSend /quiz to continue or /progress to review what you know."

	msgHelp = `<b>Commands</b>

/progress - verses you have marked as known
/know &lt;book&gt; &lt;chapter&gt; &lt;verse&gt; - know a chapter up to a verse
/forget &lt;book&gt; [chapter] - forget a chapter or a whole book
/quiz - quiz yourself on known verses
/learn &lt;book&gt; &lt;chapter&gt; - read a chapter verse by verse
/leaderboard - your best sessions
/daily on|off - a daily verse from what you know`

	msgKnowUsage   = "Usage: /know &lt;book&gt; &lt;chapter&gt; &lt;highest verse&gt;\nExample: /know John 3 16"
	msgForgetUsage = "Usage: /forget &lt;book&gt; [chapter]\nExample: /forget John 3"
	msgLearnUsage  = "Usage: /learn &lt;book&gt; &lt;chapter&gt;\nExample: /learn John 3"
	msgDailyUsage  = "Usage: /daily on or /daily off"

	msgUnknownBook    = "I have no questions for <b>%s</b>. Books with questions: %s"
	msgUnknownChapter = "I have no questions for <b>%s %d</b>. Chapters: %s"
	msgNoVerses       = "I have no text for <b>%s</b>."
	msgNoChapterText  = "I have no text for <b>%s %d</b>. Chapters: %s"
	msgKnowSaved      = "Saved. You know <b>%s %d</b> up to verse %d.\n\n%s"
	msgForgotten      = "Forgotten.\n\n%s"
	msgNotKnown       = "<b>%s</b> is not in your known verses."

	msgNoProgress     = "You have not marked any verses as known yet.\nStart with /know John 3 16"
	msgProgress       = "<b>Known verses</b>\n\n%s\n\n%d questions are ready for the quiz."
	msgNoEligible     = "There are no questions for the verses you know yet. Mark some with /know first."
	msgQuizGone       = "This quiz is over. Send /quiz to start a new one."
	msgProfileMissing = "Your profile is missing. Send /start to create it."
	msgStaleButton    = "That question has moved on."

	msgQuestion      = "<b>%s</b>\n\n%s\n\n<i>The answer appears in %s.</i>"
	msgAnswer        = "<b>%s</b>\n\n%s\n\n<b>Answer:</b> %s\n\nWere you right?"
	msgGraded        = "<b>%s</b>\n\n%s\n\n<b>Answer:</b> %s\n\n%s Streak: %d"
	msgQuizSummary   = "<b>Quiz finished</b>\n\nCorrect: %d of %d (%.0f%%)\nLongest streak: %d"
	msgGradedCorrect = "✅ Correct."
	msgGradedWrong   = "❌ Not this time."

	msgNoSessions  = "No sessions yet. Take a /quiz first."
	msgLeaderboard = "<b>Longest streak</b>\n%s\n\n<b>Accuracy</b>\n%s\n\n<i>▶ marks your latest session</i>"

	msgLearnVerse = "<b>%s</b> (%d/%d)\n\n%s%s"

	msgDailySubscribed   = "You will get a verse you know every day."
	msgDailyUnsubscribed = "Daily verses are off."
	msgDailyVerse        = "<b>Verse of the day: %s</b>\n\n%s"
)
