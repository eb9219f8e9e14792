package locale

var frenchLabels = Labels{
	"title":  "COTATION",
	"step.1": "Données d’acheminement",
	"step.2": "Informations sur la cargaison",
	"step.3": "Informations de contact",
	"step.4": "Informations sur la société",
	"step.5": "Synthèse",
	"step.6": "Confirmation",

	"section.scope":       "CHAMP D’APPLICATION",
	"section.origin":      "ORIGINE",
	"section.destination": "DESTINATION",
	"section.routing":     "DONNÉES D’ACHEMINEMENT",
	"section.cargo":       "INFORMATIONS SUR LA CARGAISON",
	"section.contact":     "INFORMATIONS DE CONTACT",
	"section.company":     "INFORMATIONS SUR LA SOCIÉTÉ",
	"section.documents":   "Documents",

	"field.transportMode":         "Mode de transport",
	"field.incoterm":              "Incoterms",
	"field.scope":                 "Périmètre",
	"field.originCountry":         "Pays",
	"field.originCity":            "Ville",
	"field.originDate":            "Date de prise en charge",
	"field.destinationCountry":    "Pays",
	"field.destinationCity":       "Ville",
	"field.destinationDate":       "Date de livraison",
	"field.QuotationType":         "Type de cargaison",
	"field.volume":                "Volume total (CBM)",
	"field.weight":                "Poids total (KG)",
	"field.temperatureControlled": "Température contrôlée",
	"field.dangerousGoods":        "Marchandises dangereuses",
	"field.customsFormalities":    "Formalités douanières",
	"field.insurance":             "Assurance",
	"field.comment":               "Ecrivez ci-dessous",
	"field.files":                 "Documents",
	"field.firstName":             "Prénom",
	"field.lastName":              "Nom",
	"field.phoneCode":             "Indicatif",
	"field.phoneNumber":           "Numéro de téléphone",
	"field.email":                 "Email",
	"field.jobTitle":              "Intitulé du poste",
	"field.companyName":           "Nom de la société",
	"field.companyAddress":        "Adresse",
	"field.postalCode":            "Code Postal",
	"field.companyCity":           "Ville",
	"field.companyCountry":        "Pays",
	"field.website":               "Site web",
	"field.declarationCertified":  "Je certifie sur l’honneur que les informations et pièces jointes fournies dans cette déclaration sont exactes et complètes.",
	"field.dataProcessingConsent": "Africa Global Logistics traite vos données uniquement afin de répondre à votre demande.",
	"field.marketingConsent":      "Je consens par la présente à ce qu’Africa Global Logistics traite mes données personnelles afin de m’envoyer des offres commerciales et des informations sur nos services par email.",

	"summary.transportMode": "Mode de transport",
	"summary.incoterm":      "Incoterm",
	"summary.scope":         "Scope",
	"summary.origin":        "Origine",
	"summary.destination":   "Destination",
	"summary.type":          "Type",
	"summary.volume":        "Volume",
	"summary.weight":        "Poids",
	"summary.temperature":   "Température contrôlée",
	"summary.dangerous":     "Marchandises dangereuses",
	"summary.customs":       "Douanes",
	"summary.insurance":     "Assurance",
	"summary.comment":       "Commentaire",
	"summary.name":          "Nom",
	"summary.email":         "Email",
	"summary.phone":         "Téléphone",
	"summary.jobTitle":      "Poste",
	"summary.companyName":   "Nom",
	"summary.address":       "Adresse",
	"summary.postalCode":    "Code postal",
	"summary.city":          "Ville",
	"summary.country":       "Pays",
	"summary.website":       "Site web",
	"summary.noFiles":       "Aucun fichier joint.",
	"summary.fileName":      "Fichier",
	"summary.fileType":      "Type",
	"summary.fileSize":      "Taille",

	"yes":     "Oui",
	"no":      "Non",
	"unit.kb": "KB",

	"option.placeholder": "-- Sélectionner --",

	"confirm.title":   "Merci pour votre demande !",
	"confirm.body":    "Nous sommes ravis que vous ayez pris le temps de remplir notre formulaire de cotation. Notre équipe examine votre demande avec attention et reviendra vers vous très rapidement avec une proposition adaptée à vos besoins.",
	"confirm.browse":  "En attendant, n’hésitez pas à parcourir notre site.",
	"confirm.home":    "← Retour à l’accueil",
	"confirm.restart": "Faire une autre demande",
}

var englishLabels = Labels{
	"title":  "QUOTATION",
	"step.1": "Routing data",
	"step.2": "Cargo information",
	"step.3": "Contact information",
	"step.4": "Company information",
	"step.5": "Summary",
	"step.6": "Confirmation",

	"section.scope":       "SCOPE",
	"section.origin":      "ORIGIN",
	"section.destination": "DESTINATION",
	"section.routing":     "ROUTING DATA",
	"section.cargo":       "CARGO INFORMATION",
	"section.contact":     "CONTACT INFORMATION",
	"section.company":     "COMPANY INFORMATION",
	"section.documents":   "Documents",

	"field.transportMode":         "Transport mode",
	"field.incoterm":              "Incoterms",
	"field.scope":                 "Scope",
	"field.originCountry":         "Country",
	"field.originCity":            "City",
	"field.originDate":            "Pick-up date",
	"field.destinationCountry":    "Country",
	"field.destinationCity":       "City",
	"field.destinationDate":       "Delivery date",
	"field.QuotationType":         "Cargo type",
	"field.volume":                "Total volume (CBM)",
	"field.weight":                "Total weight (KG)",
	"field.temperatureControlled": "Temperature controlled",
	"field.dangerousGoods":        "Dangerous goods",
	"field.customsFormalities":    "Customs formalities",
	"field.insurance":             "Insurance",
	"field.comment":               "Write below",
	"field.files":                 "Documents",
	"field.firstName":             "First name",
	"field.lastName":              "Last name",
	"field.phoneCode":             "Dialling code",
	"field.phoneNumber":           "Phone number",
	"field.email":                 "Email",
	"field.jobTitle":              "Job title",
	"field.companyName":           "Company name",
	"field.companyAddress":        "Address",
	"field.postalCode":            "Postal code",
	"field.companyCity":           "City",
	"field.companyCountry":        "Country",
	"field.website":               "Website",
	"field.declarationCertified":  "I certify that the information and attachments provided in this declaration are accurate and complete.",
	"field.dataProcessingConsent": "Africa Global Logistics processes your data solely to answer your request.",
	"field.marketingConsent":      "I agree that Africa Global Logistics may process my personal data to send me commercial offers and information about its services by email.",

	"summary.transportMode": "Transport mode",
	"summary.incoterm":      "Incoterm",
	"summary.scope":         "Scope",
	"summary.origin":        "Origin",
	"summary.destination":   "Destination",
	"summary.type":          "Type",
	"summary.volume":        "Volume",
	"summary.weight":        "Weight",
	"summary.temperature":   "Temperature controlled",
	"summary.dangerous":     "Dangerous goods",
	"summary.customs":       "Customs",
	"summary.insurance":     "Insurance",
	"summary.comment":       "Comment",
	"summary.name":          "Name",
	"summary.email":         "Email",
	"summary.phone":         "Phone",
	"summary.jobTitle":      "Job title",
	"summary.companyName":   "Name",
	"summary.address":       "Address",
	"summary.postalCode":    "Postal code",
	"summary.city":          "City",
	"summary.country":       "Country",
	"summary.website":       "Website",
	"summary.noFiles":       "No file attached.",
	"summary.fileName":      "File",
	"summary.fileType":      "Type",
	"summary.fileSize":      "Size",

	"yes":     "Yes",
	"no":      "No",
	"unit.kb": "KB",

	"option.placeholder": "-- Select --",

	"confirm.title":   "Thank you for your request!",
	"confirm.body":    "We are glad you took the time to fill in our quotation form. Our team is reviewing your request carefully and will get back to you shortly with a proposal tailored to your needs.",
	"confirm.browse":  "In the meantime, feel free to browse our website.",
	"confirm.home":    "← Back to home",
	"confirm.restart": "Make another request",
}
