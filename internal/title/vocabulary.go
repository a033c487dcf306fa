package title

// imperatives are instruction verbs addressed to the bot.
var imperatives = map[string]bool{
	"marque": true, "marca": true, "marcar": true,
	"agende": true, "agendar": true,
	"coloque": true, "coloca": true, "colocar": true,
	"anote": true, "anota": true, "anotar": true,
	"lembre": true, "lembra": true, "lembrar": true, "lembrete": true,
	"crie": true, "cria": true, "criar": true,
	"faca": true, "adicione": true, "adiciona": true,
	"registre": true, "registra": true, "salve": true, "salva": true,
}

// instructionPhrases are dropped as a whole, longest first.
var instructionPhrases = [][]string{
	{"me", "lembre", "de"},
	{"me", "lembra", "de"},
	{"me", "lembrar", "de"},
	{"na", "minha", "agenda"},
	{"no", "meu", "calendario"},
	{"lembre", "de"},
	{"lembra", "de"},
	{"lembrar", "de"},
	{"na", "agenda"},
	{"no", "calendario"},
	{"por", "favor"},
	{"um", "lembrete"},
	{"um", "evento"},
}

// temporalPhrases are multi-token date markers without digits.
var temporalPhrases = [][]string{
	{"depois", "de", "amanha"},
	{"semana", "que", "vem"},
	{"mes", "que", "vem"},
	{"proxima", "semana"},
	{"semana", "passada"},
	{"que", "vem"},
	{"ao", "meio-dia"},
	{"a", "meia-noite"},
}

var dayParts = map[string]bool{"manha": true, "tarde": true, "noite": true, "madrugada": true}

var dayPartLeads = map[string]bool{"da": true, "de": true, "a": true, "pela": true, "na": true, "nesta": true, "esta": true}

// connectors are articles and prepositions trimmed from the edges of a title.
var connectors = map[string]bool{
	"o": true, "a": true, "os": true, "as": true, "um": true, "uma": true,
	"no": true, "na": true, "nos": true, "nas": true, "em": true,
	"de": true, "da": true, "do": true, "das": true, "dos": true,
	"para": true, "pra": true, "pro": true, "ao": true, "aos": true,
	"com": true, "e": true, "que": true, "dia": true, "me": true,
}

// stopKeys end a name or an action object in the fallback templates.
var stopKeys = map[string]bool{
	"as": true, "a": true, "na": true, "no": true, "em": true, "e": true,
	"para": true, "pra": true, "pro": true, "ao": true, "dia": true, "que": true,
	"daqui": true, "depois": true, "com": true,
}

var doctorTitles = map[string]string{
	"dr": "Dr.", "dra": "Dra.", "doutor": "Dr.", "doutora": "Dra.",
}

// nameParticles stay lower case inside capitalized names.
var nameParticles = map[string]bool{"da": true, "de": true, "do": true, "dos": true, "das": true}

// eventKeywords are scanned in order by the last fallback stage.
var eventKeywords = []struct {
	key     string
	display string
}{
	{"reuniao", "Reunião"},
	{"consulta", "Consulta"},
	{"dentista", "Dentista"},
	{"medico", "Médico"},
	{"jantar", "Jantar"},
	{"almoco", "Almoço"},
	{"cafe", "Café"},
	{"academia", "Academia"},
	{"treino", "Treino"},
	{"aula", "Aula"},
	{"entrevista", "Entrevista"},
	{"aniversario", "Aniversário"},
	{"festa", "Festa"},
	{"viagem", "Viagem"},
	{"encontro", "Encontro"},
	{"call", "Call"},
}
