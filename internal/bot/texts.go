package bot

const (
	cmdInfo        = "/info"
	cmdStart       = "/start"
	cmdEnterWeight = "/enter_weight"
	cmdPlot        = "/plot"
	cmdPlotAll     = "/plot_all"
	cmdDownload    = "/download"
	cmdUpload      = "/upload"
	cmdErase       = "/erase"

	// Reply-keyboard button labels double as commands.
	btnEnterWeight = "Enter current body weight"
	btnShowMenu    = "Show menu"

	confirmationWord = "yes"
)

const textCommandList = "/enter_weight - enter current weight\n\n" +
	"/plot - show plot (2 weeks)\n" +
	"/plot_all - show plot (all time)\n" +
	"/download - download data (*.csv)\n" +
	"/upload - upload data (*.csv)\n" +
	"/erase - erase all data\n\n" +
	"/start - show menu\n\n" +
	"/info - info and advice on how to use this bot"

const textInfo = "This bot is designed to track body weight and will help you on your fitness journey. " +
	"Simply weigh yourself regularly and send me the results.\n\n" +
	"Your body weight highly varies from day to day (up to ~3 kg), mainly due to food and fluid retention. " +
	"A single reading tells you almost nothing about the tissue you actually gained or lost. " +
	"To track your progress efficiently, measure your body mass at least <b>3 times a week (ideally, every day)</b>, " +
	"roughly at the same hour, and write down the results. After at least 2 weeks, look at the " +
	"<a href=\"https://en.wikipedia.org/wiki/Trend_line_(technical_analysis)\">trend line</a>: " +
	"it shows whether you are losing or gaining weight, and at what speed.\n\n" +
	"The mission of this bot is to make that process <b>as effortless as possible</b>. " +
	"Just pull out your phone and send me a couple of digits. " +
	"Fitness is all about building momentum, and <b>the less unnecessary resistance you meet, " +
	"the more sustainable your habits become.</b>\n\n" +
	"As a general guideline, aim at <b>0.5-1 kg per week</b> for <b>weight loss</b> " +
	"and <b>0.2-0.5 kg per week</b> for <b>bulking</b>. These numbers depend on sex, age and overall health, " +
	"so consider consulting a coach or nutritionist."

const textMenu = "Hello, I am a bot designed to track body weight and help you reach fitness goals. " +
	"Please select a command below.\n\n" + textCommandList

const (
	textAskWeight     = "How much do you weigh today?"
	textInvalidWeight = "Please enter a valid positive number (your body mass in kg) /start"

	textPlotRecent = "Here's a plot of your progress over the last two weeks.\n"
	textPlotAll    = "Here's a plot of your overall progress.\n"

	textNoDataToDownload = "You don't have any data to download yet.\n\n" +
		"Use /enter_weight daily.\n" +
		"Alternatively, use /upload to upload your existing data."
	textDownloadCaption = "<b>Here is all of your data.</b> " +
		"You can either analyze it by yourself, or use it as a backup to /upload it in case of the data loss."

	textEraseWarning = "You are about to <b>erase all of your data</b>. This cannot be undone.\n\n" +
		"<b>Please confirm by typing <i>yes</i></b>.\n\n" +
		"/start - return"
	textEraseCancelled = "Ok, cancelling the deletion."
	textEraseNoData    = "You don't have any data yet."
	textEraseDone      = "Ok, I have forgotten everything about your progress.\n" +
		"But grab the file with your erased data, just in case."

	textNotADocument  = "I didn't get a valid document.\n/start"
	textInvalidCSV    = "The file is invalid. Please use /download to get an example of a valid file.\n/start"
	textImportFailure = "Unexpected error occurred during your file processing. I'm sorry.\n/start"
	textImportDone    = "<b>Data has been uploaded successfully.</b>\nTake a look at the plot."

	textUnexpectedDocument = "That is an unexpected document. " +
		"Do you want me to upload your body weight data? Use the /upload command."
)

const textUpload = "You can upload your existing body weight data by giving me a *.csv table. " +
	"The table should contain two columns:\n" +
	"- Date in the YYYY/MM/DD format\n" +
	"- Body weight\n" +
	"You can download an example by using the /download command.\n\n" +
	"To proceed with uploading, please send me a valid *.csv file." +
	"\n\n/start - return to menu"

func textFileTooBig(maxBytes int64) string {
	return "File is too big (max size " + formatKilobytes(maxBytes) + " kb)\n/start"
}
